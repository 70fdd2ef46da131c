package logx

// Nop returns a Logger that drops every entry.
func Nop() Logger {
	return nop
}

// OrNop returns l, or the no-op Logger when l is nil. Constructors accept a
// nil logger through it.
func OrNop(l Logger) Logger {
	if l == nil {
		return nop
	}
	return l
}

var nop Logger = discard{}

type discard struct{}

func (discard) Debug(string, ...Field) {}
func (discard) Info(string, ...Field)  {}
func (discard) Warn(string, ...Field)  {}
func (discard) Error(string, ...Field) {}
func (discard) With(...Field) Logger   { return nop }
func (discard) Sync() error            { return nil }
