package domain

import "strings"

// CollectorName is the full name of the person who collected the package.
type CollectorName struct {
	FirstName string
	Surname   string
	LastName  string
}

// IsEmpty reports whether no part of the name is set.
func (n CollectorName) IsEmpty() bool {
	return n.FirstName == "" && n.Surname == "" && n.LastName == ""
}

// Display formats the name as surname followed by initials, e.g. "Иванов И.П.".
func (n CollectorName) Display() string {
	if n.IsEmpty() {
		return ""
	}
	var b strings.Builder
	b.WriteString(n.Surname)
	if r := firstRune(n.FirstName); r != "" {
		b.WriteString(" ")
		b.WriteString(r)
	}
	if r := firstRune(n.LastName); r != "" {
		b.WriteString(".")
		b.WriteString(r)
	}
	b.WriteString(".")
	return b.String()
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
