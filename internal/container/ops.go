package container

// Operation names used in errors, logs and metrics labels.
const (
	OpCreate       = "create"
	OpDestroy      = "destroy"
	OpReset        = "reset"
	OpSoftReset    = "soft_reset"
	OpResize       = "resize"
	OpFirst        = "first"
	OpLast         = "last"
	OpAt           = "at"
	OpInsertFirst  = "insert_first"
	OpInsertLast   = "insert_last"
	OpInsertAt     = "insert_at"
	OpExtractFirst = "extract_first"
	OpExtractLast  = "extract_last"
	OpExtractAt    = "extract_at"
	OpConcat       = "concat"
	OpTraverse     = "traverse"
)

// ValidatePayload checks a payload before it is copied into a container.
func ValidatePayload(data []byte) error {
	if data == nil {
		return ErrSrcNull
	}
	if len(data) == 0 {
		return ErrBytesZero
	}
	if len(data) > MaxPayload {
		return ErrSizeMismatch
	}
	return nil
}
