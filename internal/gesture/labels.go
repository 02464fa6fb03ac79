package gesture

// All lists every recognizable label including None, in no particular order.
var All = []Label{
	None, OKSign, CallMe, LSign, Rock, PinchMiddle, Peace,
	RingCurl, MiddleCurl, PinkyCurl, OpenPalm, IndexUp, Grab,
}

var known = func() map[Label]bool {
	m := make(map[Label]bool, len(All))
	for _, l := range All {
		m[l] = true
	}
	return m
}()

// Known reports whether l is a member of the closed label set.
func Known(l Label) bool {
	return known[l]
}
