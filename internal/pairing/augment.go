package pairing

// Augment oversamples the calving class.
//
// Unlabeled pairs are dropped and No calving pairs are kept as they are.
// The calving pairs are replaced by every combination of their before ids
// with their after ids (before-major order), so n calving pairs become n*n.
// Repeated ids are not collapsed. Synthetic pairs carry no area.
func Augment(pairs []Pair) []Pair {
	var nonCalving []Pair
	var befores, afters []string

	for _, p := range pairs {
		switch p.Label {
		case NoCalving:
			nonCalving = append(nonCalving, p)
		case Calving:
			befores = append(befores, p.Before)
			afters = append(afters, p.After)
		}
	}

	out := make([]Pair, 0, len(nonCalving)+len(befores)*len(afters))
	out = append(out, nonCalving...)
	for _, b := range befores {
		for _, a := range afters {
			out = append(out, Pair{Before: b, After: a, Label: Calving})
		}
	}
	return out
}
