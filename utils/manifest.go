package utils

import (
	"bytes"
	"embed"
	"html/template"
	"slices"
	"strconv"
	"strings"
	"time"

	"railshift/models"
)

//go:embed templates/manifest.html
var templatesFS embed.FS

var manifestTmpl = template.Must(template.ParseFS(templatesFS, "templates/manifest.html"))

// BuildManifest lays out one manifest row per wagon picked up on each leg,
// in leg order.
func BuildManifest(shift *models.USNShift, wagons map[int64]models.Wagon, loco *models.Locomotive, now time.Time) models.ManifestPDFData {
	data := models.ManifestPDFData{
		Shift:       shift,
		Title:       "Wagon Manifest",
		Date:        "-",
		GeneratedAt: now.Format("02-Jan-2006 15:04"),
	}
	if d, err := time.Parse("2006-01-02", shift.Date); err == nil {
		data.Date = d.Format("02-Jan-2006")
	}
	if loco != nil {
		data.Locomotive = strings.TrimSpace(loco.Name + " " + loco.Number)
	}

	var trains []string
	var totalWeight, totalBrake float64
	for _, leg := range shift.RoutePlanning {
		if leg.TrainNo != "" && !slices.Contains(trains, leg.TrainNo) {
			trains = append(trains, leg.TrainNo)
		}
		kept := make(map[int64]bool, len(leg.SecondWagonAction))
		for _, a := range leg.SecondWagonAction {
			kept[a.WagonID] = true
		}
		for _, a := range leg.FirstWagonAction {
			w, ok := wagons[a.WagonID]
			if !ok {
				w = models.Wagon{ID: a.WagonID, WagonNumber: strconv.FormatInt(a.WagonID, 10)}
			}
			gross := w.TareWeight + w.LoadWeight
			row := models.ManifestRow{
				Seq:         len(data.Rows) + 1,
				WagonNumber: WagonNumberSegments(w.WagonNumber),
				Type:        w.Type,
				Axles:       w.Axles,
				TareWeight:  formatTonnes(w.TareWeight),
				LoadWeight:  formatTonnes(w.LoadWeight),
				GrossWeight: formatTonnes(gross),
				BrakeWeight: formatTonnes(w.BrakeWeight),
				From:        leg.StartLocation.Name,
				To:          leg.ArrivalLocation.Name,
			}
			remarks := []string{w.Remarks, leg.Purpose}
			if !kept[a.WagonID] && leg.ArrivalLocation.Name != "" {
				remarks = append(remarks, "Dropped at "+leg.ArrivalLocation.Name)
			}
			row.Remarks = joinNonEmpty(remarks, "; ")

			data.Rows = append(data.Rows, row)
			data.TotalAxles += w.Axles
			totalWeight += gross
			totalBrake += w.BrakeWeight
		}
	}
	data.TrainNumbers = strings.Join(trains, ", ")
	data.TotalWeight = formatTonnes(totalWeight)
	data.TotalBrake = formatTonnes(totalBrake)
	return data
}

func formatTonnes(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func joinNonEmpty(parts []string, sep string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

// RenderManifestHTML renders the full HTML document for a manifest.
func RenderManifestHTML(data models.ManifestPDFData) ([]byte, error) {
	var buf bytes.Buffer
	if err := manifestTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
