package service

import (
	"crypto/rand"
	"math/big"
)

// channelCodeAlphabet - символы кода присоединения к каналу
const channelCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateChannelCode возвращает случайный код из [A-Z0-9] заданной длины
func GenerateChannelCode(length int) (string, error) {
	max := big.NewInt(int64(len(channelCodeAlphabet)))
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = channelCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
