package analysis

import (
	"errors"
	"fmt"
	"os"

	"github.com/rustyeddy/rebalance/market"
	"github.com/vicanso/go-charts/v2"
)

// RenderAssetsCurve renders the assets series and its running peak as a
// PNG line chart.
func RenderAssetsCurve(assets []AssetPoint, title string) ([]byte, error) {
	if len(assets) < 2 {
		return nil, errors.New("not enough data points for a chart")
	}

	values := make([]float64, len(assets))
	peaks := make([]float64, len(assets))
	labels := make([]string, len(assets))
	peak := assets[0].Assets
	for i, p := range assets {
		if p.Assets > peak {
			peak = p.Assets
		}
		values[i] = p.Assets
		peaks[i] = peak
		labels[i] = market.FormatDate(p.Date)
	}

	painter, err := charts.LineRender([][]float64{values, peaks},
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: 8}),
		charts.LegendOptionFunc(charts.LegendOption{Data: []string{"assets", "peak"}}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("render assets curve: %w", err)
	}
	return painter.Bytes()
}

// SaveAssetsCurve renders the assets curve to a PNG file.
func SaveAssetsCurve(assets []AssetPoint, title, path string) error {
	img, err := RenderAssetsCurve(assets, title)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, img, 0o644); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}
