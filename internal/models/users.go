package models

// UserPresence is one entry of the array form of the upstream /users
// response. Only its presence matters to the dashboard (the active-user
// count is the array length); the fields are kept so the payload can be
// re-served unchanged.
type UserPresence struct {
	Fleet    string        `json:"fleet"`
	Magvar   float64       `json:"magvar"`
	Inscale  bool          `json:"inscale"`
	Mood     int           `json:"mood"`
	Addon    int           `json:"addon"`
	Ping     int           `json:"ping"`
	Location PresencePoint `json:"location"`
	ID       string        `json:"id"`
	UserName string        `json:"userName"`
	Speed    float64       `json:"speed"`
	Ingroup  bool          `json:"ingroup"`
}

type PresencePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Intervals lists the interval tokens the UI offers. They are opaque to this
// service and passed through to the upstream API unvalidated.
var Intervals = []string{"1h", "3h", "12h", "1d", "3d", "1sem", "1mes", "custom"}
