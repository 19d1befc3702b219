package models

// Shape is a drawing object found on a sheet. Positions and sizes are screen
// pixels at 96 DPI, measured from the sheet's top-left corner.
type Shape struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
	Text string `json:"text"`

	L int `json:"l"`
	T int `json:"t"`
	W int `json:"w"`
	H int `json:"h"`
	// Rotation in degrees, nil when the shape is not rotated.
	Rotation *float64 `json:"rotation,omitempty"`

	// ID numbers the sheet's non-connector shapes from 1 in drawing order.
	ID *int `json:"id,omitempty"`

	// Connector fields. BeginID and EndID refer to the ID of the attached
	// shapes; Direction is a compass heading such as "NE".
	BeginID         *int   `json:"begin_id,omitempty"`
	EndID           *int   `json:"end_id,omitempty"`
	Direction       string `json:"direction,omitempty"`
	BeginArrowStyle *int   `json:"begin_arrow_style,omitempty"`
	EndArrowStyle   *int   `json:"end_arrow_style,omitempty"`
}
