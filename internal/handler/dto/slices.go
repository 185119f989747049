package dto

// nonNil гарантирует, что пустой список сериализуется в [], а не в null
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
