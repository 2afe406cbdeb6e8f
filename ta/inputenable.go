package ta

// makeInputEnabled inserts a true-guarded, no-reset self-loop edge
// loc —a→ loc for every location loc and every declared input action a that
// has no outgoing edge on a from loc already, per spec §4.2. Required for
// the refinement theory (spec §4.5) to apply to this component as either
// side of a comparison.
func makeInputEnabled(c *Component) {
	for _, locName := range c.locOrder {
		have := make(map[string]bool)
		for _, e := range c.edgesBySrc[locName] {
			if e.Kind == Input {
				have[e.Action] = true
			}
		}
		for action := range c.Inputs {
			if have[action] {
				continue
			}
			c.edgesBySrc[locName] = append(c.edgesBySrc[locName], &Edge{
				Source: locName,
				Target: locName,
				Action: action,
				Kind:   Input,
				Guard:  nil,
				Resets: nil,
			})
		}
	}
}
