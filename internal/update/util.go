package update

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
