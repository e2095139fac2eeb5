package surface

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/c9s/wavegif/pkg/types"
)

//go:embed page/chart.html
var pageFiles embed.FS

var pageTemplate = template.Must(template.ParseFS(pageFiles, "page/chart.html"))

type PageData struct {
	Width   int
	Height  int
	Dataset types.ChartDataset
}

// RenderPage renders the chart document. html/template escapes the dataset
// as a javascript value.
func RenderPage(data PageData) (string, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// updateChartScript builds the expression that invokes the page's mutation
// entry point. The trailing true gives the evaluation a defined result.
func updateChartScript(points []types.WavePoint) (string, error) {
	if points == nil {
		points = []types.WavePoint{}
	}

	payload, err := json.Marshal(points)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("window.updateChart(%s), true", payload), nil
}

const readyScript = `document.querySelector("canvas") !== null && window.chartReady === true`

const canvasDataURLScript = `document.querySelector("canvas").toDataURL("image/png")`
