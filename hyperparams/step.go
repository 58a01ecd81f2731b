package hyperparams

type step struct {
	Iter int     `json:"iter"`
	Val  float64 `json:"value"`
}

type stepper []step

// Step returns a HyperParameter that starts at base and changes at the iterations given by Add
func Step(base float64) *stepper {
	st := stepper{{0, base}}
	return &st
}

// Add adds a step to the HyperParameter. Steps must be added in order of iteration.
func (s *stepper) Add(iter int, value float64) *stepper {
	*s = append(*s, step{iter, value})
	return s
}

func (s *stepper) TypeString() string {
	return "step"
}

func (s *stepper) Value(iter int) float64 {
	sl := []step(*s)
	for i := 1; i < len(sl); i++ {
		if sl[i].Iter > iter {
			return sl[i-1].Val
		}
	}

	return sl[len(sl)-1].Val
}

func (s *stepper) Get() interface{} {
	return []step(*s)
}

func (s *stepper) Blank() interface{} {
	return (*[]step)(s)
}
