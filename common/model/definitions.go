package model

// Typed views over the GDB mark payload. The service returns an open-ended
// JSON document; these structs cover the commonly used summary fields, and
// anything not listed here is still reachable through the raw record.

// Coordinate is a mark coordinate in the service's published datum.
type Coordinate struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Height           float64 `json:"height"`
	CoordinateSystem string  `json:"coordinateSystem,omitempty"`
}

// MarkSummary is the headline metadata for a geodetic mark.
type MarkSummary struct {
	GeodeticCode  string     `json:"geodeticCode"`
	Name          string     `json:"name"`
	MarkType      string     `json:"markType,omitempty"`
	BeaconType    string     `json:"beaconType,omitempty"`
	MarkCondition string     `json:"markCondition,omitempty"`
	Order         string     `json:"nzgdOrder,omitempty"`
	Coordinate    Coordinate `json:"coordinate"`
}
