package models

// ManifestRow is one wagon line of the printed route manifest.
type ManifestRow struct {
	Seq         int
	WagonNumber [5]string
	Type        string
	Axles       int
	TareWeight  string
	LoadWeight  string
	GrossWeight string
	BrakeWeight string
	From        string
	To          string
	Remarks     string
}

type ManifestPDFData struct {
	Shift        *USNShift
	Title        string
	Date         string // formatted shift date
	Locomotive   string
	TrainNumbers string
	Rows         []ManifestRow
	TotalAxles   int
	TotalWeight  string
	TotalBrake   string
	GeneratedAt  string
}
