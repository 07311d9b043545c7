package menu

// Fanout returns a setter that passes every value to each of setters.
func Fanout(setters ...Setter) Setter {
	targets := compact(setters)
	return func(v float64) {
		for _, set := range targets {
			set(v)
		}
	}
}

// Spread returns a setter that offsets each target symmetrically around the
// center: target i receives v*(i-mid)/mid where mid is the middle index. With
// two targets the first gets -v and the second +v. A single target stays at 0.
func Spread(setters ...Setter) Setter {
	n := len(setters)
	mid := float64(n-1) / 2
	return func(v float64) {
		for i, set := range setters {
			if set == nil {
				continue
			}
			if mid == 0 {
				set(0)
				continue
			}
			set(v * (float64(i) - mid) / mid)
		}
	}
}

func compact(setters []Setter) []Setter {
	out := make([]Setter, 0, len(setters))
	for _, s := range setters {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
