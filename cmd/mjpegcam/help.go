package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/lanikai/mjpegcam"
	"github.com/lanikai/mjpegcam/driver"
)

const helpString = `Stream a camera as Motion JPEG

Usage: mjpegcam [OPTION]...

Without --push, the stream is written to standard output as an HTTP response,
ready to be piped into a connection. Logs go to standard error; set LOGLEVEL
(e.g. LOGLEVEL=debug or LOGLEVEL=info,v4l2=trace) to change verbosity.

Camera:
  -i, --input=FILE           Video capture device (default: /dev/video0)
  -r, --resolution=SIZE      Frame size, by name or WxH (default: vga)
  -q, --quality=NUM          JPEG quality, 0 (best) to 63 (worst) (default: 12)
      --buffers=NUM          Number of hardware frame buffers (default: 2)
  -s, --set=NAME=VALUE,...   Sensor controls to apply before streaming
      --settle=DURATION      Wait after each sensor change (default: 500ms)

Stream:
  -p, --push=URL             Push to tcp://host:port or ws://host/path
      --min-interval=DURATION
                             Minimum interval between frames (default: 0s)
  -n, --max-frames=NUM       Stop after this many frames (default: -1, no limit)
      --frame-timeout=DURATION
                             Time limit for writing one frame (default: 10s)

Miscellaneous:
      --log-level=LIST       Logging directives, overriding LOGLEVEL
  -h, --help                 Prints this help message and exits
  -v, --version              Prints version information and exits
`

// Help information is printed and program exits
func help() {
	r := color.New(color.FgRed)
	y := color.New(color.FgYellow)
	b := color.New(color.FgCyan)

	//             _
	//  _ __ ___  (_) _ __   ___  __ _  ___  __ _  _ __ ___
	// | '_ ` _ \ | || '_ \ / _ \/ _` |/ __|/ _` || '_ ` _ \
	// | | | | | || || |_) |  __/ (_| | (__| (_| || | | | | |
	// |_| |_| |_|/ ||  __/ \___|\__, |\___|\__,_||_| |_| |_|
	//          |__/ |_|         |___/

	r.Printf("            ")
	y.Printf(" _ ")
	b.Println("")

	r.Printf(" _ __ ___  ")
	y.Printf("(_)")
	b.Printf(" _ __  ")
	r.Printf("  ___  __ _ ")
	y.Println(" ___  __ _  _ __ ___")

	r.Printf("| '_ ` _ \\ ")
	y.Printf("| |")
	b.Printf("| '_ \\ ")
	r.Printf("/ _ \\/ _` |")
	y.Println("/ __|/ _` || '_ ` _ \\")

	r.Printf("| | | | | |")
	y.Printf("| |")
	b.Printf("| |_) |")
	r.Printf("  __/ (_| |")
	y.Println(" (__| (_| || | | | | |")

	r.Printf("|_| |_| |_|")
	y.Printf("/ |")
	b.Printf("| .__/ ")
	r.Printf("\\___|\\__, |")
	y.Println("\\___|\\__,_||_| |_| |_|")

	r.Printf("         ")
	y.Printf("|__/ ")
	b.Printf("|_|    ")
	r.Println("     |___/")

	fmt.Print(helpString)
	fmt.Println()
	fmt.Println("Frame sizes:")
	fmt.Println("  " + strings.Join(frameSizeNames(), ", "))
	fmt.Println("Controls:")
	fmt.Println("  " + strings.Join(mjpegcam.ControlNames(), ", "))
}

func frameSizeNames() []string {
	var names []string
	for _, fs := range driver.FrameSizes() {
		names = append(names, fmt.Sprintf("%s (%dx%d)", fs, fs.Width(), fs.Height()))
	}
	return names
}

// version displays information and exits successfully (GNU convention)
func version() {
	fmt.Println("mjpegcam", GitRevisionId)
}
