package repositories

// NotifyingStateStore wraps a StateStore and reports write failures to a
// hook. Callers still see the error; the hook is for surfacing best-effort
// persistence failures (an outbound event, a metric) that would otherwise
// only reach the log.
type NotifyingStateStore struct {
	inner        StateStore
	onWriteError func(key string, err error)
}

// NewNotifyingStateStore creates a NotifyingStateStore. A nil hook makes the
// wrapper a pass-through.
func NewNotifyingStateStore(inner StateStore, onWriteError func(key string, err error)) *NotifyingStateStore {
	return &NotifyingStateStore{
		inner:        inner,
		onWriteError: onWriteError,
	}
}

// Load returns the payload stored under a key.
func (s *NotifyingStateStore) Load(key string) ([]byte, error) {
	return s.inner.Load(key)
}

// Save stores the payload under a key, reporting any failure to the hook.
func (s *NotifyingStateStore) Save(key string, payload []byte) error {
	err := s.inner.Save(key, payload)
	if err != nil && s.onWriteError != nil {
		s.onWriteError(key, err)
	}
	return err
}
