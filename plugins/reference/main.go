package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/hashicorp/go-plugin"

	notifyrpc "worklog/internal/modules/notify/adapter/out/rpc"
)

const (
	chartWidth  = 960
	rowHeight   = 36
	rowGap      = 4
	marginLeft  = 8
	marginRight = 8
)

var (
	background = color.RGBA{R: 0x1e, G: 0x1e, B: 0x2e, A: 0xff}
	gridTrack  = color.RGBA{R: 0x31, G: 0x32, B: 0x44, A: 0xff}
)

type weekLayout struct {
	WeekStart string `json:"week_start"`
	Rows      []struct {
		Date  string `json:"date"`
		Bands []struct {
			StartFrac float64 `json:"start_frac"`
			WidthFrac float64 `json:"width_frac"`
			Category  string  `json:"category"`
			Color     string  `json:"color"`
		} `json:"bands"`
	} `json:"rows"`
}

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *notifyrpc.Empty) (*notifyrpc.Metadata, error) {
	return &notifyrpc.Metadata{
		Name:         "reference",
		Version:      "1.0.0",
		Capabilities: []string{"notify", "render"},
	}, nil
}

func (s *server) Notify(_ context.Context, in *notifyrpc.NotifyRequest) (*notifyrpc.NotifyResponse, error) {
	if in.Target == "" {
		return nil, fmt.Errorf("notify target is required")
	}
	// Stderr is forwarded into the host's log stream.
	_, _ = fmt.Fprintf(os.Stderr, "notify %s %s: %s\n", in.Kind, in.Target, in.Body)
	return &notifyrpc.NotifyResponse{}, nil
}

func (s *server) Render(_ context.Context, in *notifyrpc.RenderRequest) (*notifyrpc.RenderResponse, error) {
	layout := weekLayout{}
	if err := json.Unmarshal([]byte(in.LayoutJSON), &layout); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	raw, err := renderPNG(layout)
	if err != nil {
		return nil, err
	}
	return &notifyrpc.RenderResponse{PNG: raw}, nil
}

// renderPNG paints one horizontal 24h track per day, bands colored by
// category.
func renderPNG(layout weekLayout) ([]byte, error) {
	rows := len(layout.Rows)
	if rows == 0 {
		rows = 7
	}
	height := rows*(rowHeight+rowGap) + rowGap
	canvas := image.NewRGBA(image.Rect(0, 0, chartWidth, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	trackWidth := chartWidth - marginLeft - marginRight
	for i, row := range layout.Rows {
		top := rowGap + i*(rowHeight+rowGap)
		track := image.Rect(marginLeft, top, marginLeft+trackWidth, top+rowHeight)
		draw.Draw(canvas, track, image.NewUniform(gridTrack), image.Point{}, draw.Src)

		for _, band := range row.Bands {
			from := marginLeft + int(band.StartFrac*float64(trackWidth))
			to := marginLeft + int((band.StartFrac+band.WidthFrac)*float64(trackWidth))
			if to <= from {
				to = from + 1
			}
			fill, err := parseHexColor(band.Color)
			if err != nil {
				return nil, fmt.Errorf("band %s on %s: %w", band.Category, row.Date, err)
			}
			rect := image.Rect(from, top, to, top+rowHeight)
			draw.Draw(canvas, rect, image.NewUniform(fill), image.Point{}, draw.Src)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func parseHexColor(s string) (color.RGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: notifyrpc.HandshakeConfig,
		Plugins:         notifyrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
