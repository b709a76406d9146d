package webdemo

const (
	filterKindButterworth = "butterworth"
	filterKindMedian      = "median"

	eventTypeUpdate = "update"
	eventTypeReset  = "reset"
)
