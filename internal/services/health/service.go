package health

// Service encapsulates health-related checks.
type Service struct {
	env string
}

// NewService constructs a new health service.
func NewService(env string) *Service {
	return &Service{env: env}
}

// Status returns a simple health payload.
func (s *Service) Status() map[string]any {
	return map[string]any{"ok": true, "env": s.env}
}
