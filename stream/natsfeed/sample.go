package natsfeed

// Sample is the wire form of one observation. Producers publish it as a JSON
// object on the configured subject:
//
//	{"series": "host1.cpu", "value": 0.73}
type Sample struct {
	// Series names the time series the value belongs to.
	Series string `json:"series"`
	// Value is the observed sample.
	Value float64 `json:"value"`
}
