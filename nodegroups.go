package bnn

// Returns the number of values in the group
func (ng *nodeGroup) size() int {
	if ng == nil || len(ng.sumVals) == 0 {
		return 0
	}

	return ng.sumVals[len(ng.sumVals)-1]
}

// Returns the number of nodes in the group
func num(ng *nodeGroup) int {
	if ng == nil {
		return 0
	}

	return len(ng.nodes)
}

// This method is self-explanatory
func (ng *nodeGroup) add(nodes ...*Node) {
	for _, n := range nodes {
		ng.nodes = append(ng.nodes, n)
		ng.sumVals = append(ng.sumVals, ng.size()+n.Size())
	}
}

// bounds returns the range of values in the group that belong to the given Node. If the Node is
// not a member of the group, ok will be false.
func (ng *nodeGroup) bounds(n *Node) (start, end int, ok bool) {
	for i, m := range ng.nodes {
		if m == n {
			end = ng.sumVals[i]
			return end - n.Size(), end, true
		}
	}

	return 0, 0, false
}

// getValues returns the values of the group as a single slice. If the group has a single member
// and dupe is false, its values are returned directly. Otherwise they are copied into buf, which
// is reallocated if too small.
func (ng *nodeGroup) getValues(buf []float64, dupe bool) []float64 {
	if len(ng.nodes) == 1 && !dupe {
		return ng.nodes[0].values
	}

	if cap(buf) < ng.size() {
		buf = make([]float64, ng.size())
	}
	buf = buf[:ng.size()]

	for i, n := range ng.nodes {
		copy(buf[ng.sumVals[i]-n.Size():], n.values)
	}

	return buf
}

// setValues distributes the given values among the members of the group. It returns false if the
// number of values does not match the size of the group.
func (ng *nodeGroup) setValues(values []float64) bool {
	if len(values) != ng.size() {
		return false
	}

	for i, n := range ng.nodes {
		copy(n.values, values[ng.sumVals[i]-n.Size():ng.sumVals[i]])
	}

	return true
}

// value returns the value at the given index in the group, as if the values of its members were
// a single slice.
func (ng *nodeGroup) value(index int) float64 {
	for i, n := range ng.nodes {
		if index < ng.sumVals[i] {
			return n.values[index-(ng.sumVals[i]-n.Size())]
		}
	}

	panic("index out of range")
}
