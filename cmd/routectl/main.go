package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	natsadapter "github.com/samirrijal/routemap/internal/adapters/nats"
	"github.com/samirrijal/routemap/internal/core/domain"
	"github.com/samirrijal/routemap/internal/core/ports"
	"github.com/samirrijal/routemap/internal/core/usecases"
	"github.com/samirrijal/routemap/internal/pkg/config"
	"github.com/samirrijal/routemap/internal/pkg/logging"
)

var (
	natsURL  string
	readLng  float64
	readLat  float64
	readZoom float64
	color    string
)

var rootCmd = &cobra.Command{
	Use:   "routectl",
	Short: "Inspect the route map scene",
	Long:  `Print the route, markers and viewport readouts served by the map page, or follow live viewport changes over NATS.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(os.Getenv("LOG_LEVEL"), "text")
	},
	SilenceUsage: true,
}

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Print the route line as GeoJSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printRoute(cmd.Context(), cmd.OutOrStdout())
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print point count, length and bounds of the route",
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeJSON(cmd.OutOrStdout(), newService().Summary(cmd.Context()))
	},
}

var markersCmd = &cobra.Command{
	Use:   "markers",
	Short: "Print the location markers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printMarkers(cmd.Context(), cmd.OutOrStdout(), color)
	},
}

var readoutCmd = &cobra.Command{
	Use:   "readout",
	Short: "Print the readout text for a map center and zoom",
	Run: func(cmd *cobra.Command, args []string) {
		state := domain.NewViewportState(domain.GeoPoint{Lng: readLng, Lat: readLat}, readZoom)
		fmt.Fprintln(cmd.OutOrStdout(), state.Text())
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow viewport changes published by map sessions",
	RunE:  runWatch,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&natsURL, "nats", "", "NATS URL (defaults to the configured nats.url)")

	markersCmd.Flags().StringVarP(&color, "color", "c", "", "Only markers of this color (green, red, blue)")

	readoutCmd.Flags().Float64Var(&readLng, "lng", domain.DefaultCenter.Lng, "Map center longitude")
	readoutCmd.Flags().Float64Var(&readLat, "lat", domain.DefaultCenter.Lat, "Map center latitude")
	readoutCmd.Flags().Float64VarP(&readZoom, "zoom", "z", domain.DefaultZoom, "Zoom level")

	rootCmd.AddCommand(routeCmd, summaryCmd, markersCmd, readoutCmd, watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newService() *usecases.RouteService {
	return usecases.NewRouteService(domain.DefaultMapOptions(), nil)
}

func printRoute(ctx context.Context, w io.Writer) error {
	data, err := newService().Route(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printMarkers(ctx context.Context, w io.Writer, color string) error {
	markers := newService().Markers(ctx)
	if color == "" {
		return writeJSON(w, markers)
	}

	c := domain.MarkerColor(color)
	if !c.Valid() {
		return fmt.Errorf("unknown marker color %q", color)
	}
	var out []domain.MarkerAnnotation
	for _, m := range markers {
		if m.Color == c {
			out = append(out, m)
		}
	}
	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runWatch(cmd *cobra.Command, args []string) error {
	url := natsURL
	if url == "" {
		cfg, err := config.Load("routectl")
		if err != nil {
			return err
		}
		url = cfg.NATS.URL
	}

	sub, err := natsadapter.NewSubscriber(url)
	if err != nil {
		return err
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "watching %s>\n", natsadapter.SubjectPrefix)
	return watch(ctx, sub, cmd.OutOrStdout())
}

// watch prints one line per viewport change until ctx is done.
func watch(ctx context.Context, sub ports.EventSubscriber, out io.Writer) error {
	err := sub.SubscribeViewports(ctx, func(ctx context.Context, sessionID string, state domain.ViewportState) error {
		_, err := fmt.Fprintf(out, "%s  %s\n", sessionID, state.Text())
		return err
	})
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	<-ctx.Done()
	return nil
}
