package payments

import "errors"

var (
	ErrMissingField         = errors.New("missing required field")
	ErrNoFileAttached       = errors.New("no file attached")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrFileTooLarge         = errors.New("file too large")
	ErrStorageFailure       = errors.New("failed to store proof")
	ErrPersistenceFailure   = errors.New("failed to save payment")
	ErrStoreUnavailable     = errors.New("payment store unavailable")
	ErrNotifyFailure        = errors.New("failed to send notification")
)

// Kind names reported to clients in the "error" field of a failed response.
const (
	KindMissingField         = "MissingField"
	KindNoFileAttached       = "NoFileAttached"
	KindUnsupportedMediaType = "UnsupportedMediaType"
	KindFileTooLarge         = "FileTooLarge"
	KindStorageFailure       = "StorageFailure"
	KindPersistenceFailure   = "PersistenceFailure"
	KindStoreUnavailable     = "StoreUnavailable"
	KindNotifyFailure        = "NotifyFailure"
	KindInternal             = "InternalError"
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrMissingField, KindMissingField},
	{ErrNoFileAttached, KindNoFileAttached},
	{ErrUnsupportedMediaType, KindUnsupportedMediaType},
	{ErrFileTooLarge, KindFileTooLarge},
	{ErrStorageFailure, KindStorageFailure},
	{ErrPersistenceFailure, KindPersistenceFailure},
	{ErrStoreUnavailable, KindStoreUnavailable},
	{ErrNotifyFailure, KindNotifyFailure},
}

// KindOf returns the machine-readable kind of err, or KindInternal for
// errors outside the payment taxonomy.
func KindOf(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// IsValidation reports whether err was caused by the submitter.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrNoFileAttached) ||
		errors.Is(err, ErrUnsupportedMediaType) ||
		errors.Is(err, ErrFileTooLarge)
}
