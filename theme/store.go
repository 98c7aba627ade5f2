package theme

import (
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
)

const (
	prefsObject = "prefs"
	themeProp   = "theme"
)

// Store persists the single theme preference key across runs
// A nil manager (storage unavailable) degrades to in-memory only; the
// preference simply does not survive restarts
type Store struct {
	m       *gdata.Manager
	current Theme
	logger  *zap.Logger
}

// NewStore opens app-data storage for appName
// Storage failure is logged and degraded, never fatal
func NewStore(appName string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Warn("theme storage unavailable, preference will not persist",
			zap.Error(err))
		m = nil
	}
	return &Store{m: m, current: Dark, logger: logger}
}

// Load returns the persisted theme, or the current in-memory one
func (s *Store) Load() Theme {
	if s.m == nil || !s.m.ObjectPropExists(prefsObject, themeProp) {
		return s.current
	}

	data, err := s.m.LoadObjectProp(prefsObject, themeProp)
	if err != nil {
		s.logger.Warn("theme load failed", zap.Error(err))
		return s.current
	}

	t := Theme(data)
	if !Valid(t) {
		return s.current
	}
	s.current = t
	return t
}

// Save records the theme in memory and, when available, on disk
func (s *Store) Save(t Theme) {
	if !Valid(t) {
		return
	}
	s.current = t

	if s.m == nil {
		return
	}
	if err := s.m.SaveObjectProp(prefsObject, themeProp, []byte(t)); err != nil {
		s.logger.Warn("theme save failed", zap.Error(err))
	}
}
