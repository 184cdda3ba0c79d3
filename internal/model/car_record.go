package model

// CarRecord is the flattened manufacturer→model→car join served by
// GET /cars and rendered by the viewer.  Color encodes as JSON null when
// the car has none.
type CarRecord struct {
    ID           uint64  `json:"id"`
    Manufacturer string  `json:"manufacturer"`
    Model        string  `json:"model"`
    Year         int     `json:"year"`
    Price        float64 `json:"price"`
    Color        *string `json:"color"`
}

// ColorOr returns the color or def when the record has none.
func (r CarRecord) ColorOr(def string) string {
    if r.Color == nil {
        return def
    }
    return *r.Color
}
