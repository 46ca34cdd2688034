package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"

	"github.com/lanikai/mjpegcam"
	"github.com/lanikai/mjpegcam/channel"
	"github.com/lanikai/mjpegcam/internal/logging"
	"github.com/lanikai/mjpegcam/internal/v4l2"
)

// Populated via -ldflags="-X ...".
var GitRevisionId = "dev"

var log = logging.DefaultLogger.WithTag("mjpegcam")

var (
	cameraConfig = mjpegcam.DefaultConfig()
	streamConfig = mjpegcam.DefaultStreamConfig()

	flagControls map[string]string
	flagPush     string
	flagLogLevel string
	flagSettle   time.Duration
	flagHelp     bool
	flagVersion  bool
)

func init() {
	cameraConfig.RegisterFlags(flag.CommandLine)
	streamConfig.RegisterFlags(flag.CommandLine)

	flag.StringToStringVarP(&flagControls, "set", "s", nil, "Sensor controls to apply before streaming")
	flag.DurationVar(&flagSettle, "settle", mjpegcam.DefaultSettleDelay, "Wait after each sensor change")
	flag.StringVarP(&flagPush, "push", "p", "", "Push to tcp://host:port or ws://host/path")

	flag.StringVar(&flagLogLevel, "log-level", "", "Logging directives, as in LOGLEVEL")

	flag.BoolVarP(&flagHelp, "help", "h", false, "Print usage information and exit")
	flag.BoolVarP(&flagVersion, "version", "v", false, "Print version information and exit")
}

func main() {
	flag.Usage = help
	flag.Parse()

	if flagHelp {
		help()
		os.Exit(0)
	}
	if flagVersion {
		version()
		os.Exit(0)
	}

	if flagLogLevel != "" {
		if err := logging.Configure(flagLogLevel); err != nil {
			log.Fatalf("--log-level: %v", err)
		}
	}

	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cam := mjpegcam.New(v4l2.New())
	cam.SettleDelay = flagSettle

	if err := cam.Begin(cameraConfig); err != nil {
		return err
	}
	defer cam.End()

	if err := applyControls(cam, flagControls); err != nil {
		return err
	}

	out, err := openOutput(ctx, flagPush)
	if err != nil {
		return err
	}
	defer out.Close()

	// Closing the output fails the next write, which ends the stream.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)
	go func() {
		select {
		case s := <-sig:
			log.Info("Received %v, stopping", s)
			out.Close()
		case <-ctx.Done():
		}
	}()

	start := time.Now()
	n := cam.StreamMjpeg(out, streamConfig)
	elapsed := time.Since(start)
	if elapsed > 0 {
		log.Info("%d frames in %v (%.1f fps)", n, elapsed.Round(time.Millisecond), float64(n)/elapsed.Seconds())
	}
	return nil
}

// Apply --set controls in name order, so repeated runs behave the same.
func applyControls(cam *mjpegcam.Camera, controls map[string]string) error {
	names := make([]string, 0, len(controls))
	for name := range controls {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := cam.SetByName(name, controls[name]); err != nil {
			return errors.Wrapf(err, "--set %s=%s", name, controls[name])
		}
	}
	return nil
}

func openOutput(ctx context.Context, target string) (io.WriteCloser, error) {
	if target == "" {
		return os.Stdout, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	w, err := channel.Dial(ctx, target)
	if err != nil {
		return nil, err
	}
	log.Info("Pushing to %s", target)
	return w, nil
}
