package report

// Status is the one-bit classification of whatever richer pipeline stage the
// upstream CRM tracks for a lead.
type Status string

const (
	StatusOfertada Status = "ofertada"
	StatusVendida  Status = "vendida"
)

func (s Status) IsValid() bool {
	return s == StatusOfertada || s == StatusVendida
}

// Metrics are the aggregate counters for one reporting period. closeRate and
// porcentajeCalificados arrive pre-formatted upstream and are carried opaquely.
type Metrics struct {
	TotalLeads            int     `json:"totalLeads"`
	Asistieron            int     `json:"asistieron"`
	Calificados           int     `json:"calificados"`
	Ofertados             int     `json:"ofertados"`
	Vendidos              int     `json:"vendidos"`
	CashTotal             float64 `json:"cashTotal"`
	CloseRate             string  `json:"closeRate"`
	PorcentajeCalificados string  `json:"porcentajeCalificados"`
}

// Lead is one prospect row within the period. Telefono stays a string to
// preserve formatting and leading zeros.
type Lead struct {
	Nombre        string  `json:"nombre"`
	Telefono      string  `json:"telefono"`
	FechaReunion  string  `json:"fechaReunion"`
	CloserACargo  string  `json:"closerACargo"`
	Asistio       bool    `json:"asistio"`
	Calificada    bool    `json:"calificada"`
	Status        Status  `json:"status"`
	CashCollected float64 `json:"cashCollected"`
	Facturacion   float64 `json:"facturacion"`
	Notas         string  `json:"notas"`
}

type Report struct {
	Metrics Metrics `json:"metrics"`
	Leads   []Lead  `json:"leads"`
}
