package internal

import (
	"fmt"
	"os"
	"os/signal"
	"path"
	"strconv"
	"strings"
	"syscall"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/divi255/rgbmon"
)

var (
	cfgFile string
)

var RootCmd = &cobra.Command{
	Use:   "rgbmon",
	Short: "rgbmon paints your RGB devices with the current CPU load.",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rgbmon",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("rgbmon v" + rgbmon.Version)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the load monitor",
	RunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetBool("verbose") {
			log.SetLevel(log.DebugLevel)
		}

		monitor, err := newMonitorFromConfig()
		if err != nil {
			return err
		}
		defer monitor.Close()

		pidFile := viper.GetString("pid-file")
		if err := writePidFile(pidFile); err != nil {
			return err
		}
		defer os.Remove(pidFile)

		stop := make(chan struct{})
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP, syscall.SIGUSR1, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			for sig := range sigc {
				log.WithField("signal", sig).Debug("signal received")
				switch sig {
				case syscall.SIGHUP:
					log.Info("reloading controller directory")
					monitor.Reload()
				case syscall.SIGUSR1:
					monitor.Toggle()
				case syscall.SIGINT, syscall.SIGTERM:
					close(stop)
					return
				}
			}
		}()

		log.Info("started")
		return monitor.Run(stop)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is ./rgbmon.yaml)")
	runCmd.Flags().Bool("verbose", false, "verbose output")
	runCmd.Flags().String("connect", "127.0.0.1:6742", "OpenRGB server host:port to connect to")
	runCmd.Flags().IntSlice("device-types", []int{0, 1, 2, 3, 4}, "device types to operate, comma separated")
	runCmd.Flags().String("default-color", "", "default color for low CPU load (N:RRGGBB)")
	runCmd.Flags().Float64("sleep-step", 1, "seconds between load samples")
	runCmd.Flags().Int("load-diff", 1, "minimum load change, percent, to repaint")
	runCmd.Flags().Int("retries", rgbmon.DefaultRetries, "connection retries per operation")
	runCmd.Flags().Duration("timeout", rgbmon.DefaultTimeout, "socket operation timeout")
	runCmd.Flags().String("pid-file", "/var/run/rgbmon.pid", "pid file location")
	for _, flag := range []string{
		"verbose", "connect", "device-types", "default-color",
		"sleep-step", "load-diff", "retries", "timeout", "pid-file",
	} {
		viper.BindPFlag(flag, runCmd.Flags().Lookup(flag))
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("RGBMON")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(path.Join(home, ".rgbmon"))
		viper.AddConfigPath("/etc/rgbmon/")
		viper.SetConfigName("rgbmon")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Println("Can't read config:", err)
		}
	}
}

// newMonitorFromConfig builds the client and monitor from the viper
// configuration and runs the initial enumeration.
func newMonitorFromConfig() (*Monitor, error) {
	client := rgbmon.New(rgbmon.Config{
		Retries: viper.GetInt("retries"),
		Timeout: viper.GetDuration("timeout"),
		Logger:  log.StandardLogger(),
	})
	client.SetEndpoint(viper.GetString("connect"))

	deviceTypes := make([]uint32, 0)
	for _, t := range viper.GetIntSlice("device-types") {
		deviceTypes = append(deviceTypes, uint32(t))
	}
	log.WithField("device-types", deviceTypes).Debug("device types managed")

	monitor := NewMonitor(client, MonitorOptions{
		DeviceTypes: deviceTypes,
		SleepStep:   time.Duration(viper.GetFloat64("sleep-step") * float64(time.Second)),
		LoadDiff:    uint8(viper.GetInt("load-diff")),
	})

	if s := viper.GetString("default-color"); s != "" {
		minLoad, color, err := parseDefaultColor(s)
		if err != nil {
			return nil, err
		}
		monitor.SetDefaultColor(minLoad, color)
		log.WithFields(log.Fields{"below": minLoad, "color": color}).Debug("default color configured")
	}

	// A failed initial load is not fatal: the server may come up later
	// and SIGHUP or the next repaint will retry.
	if err := monitor.Reload(); err != nil {
		log.WithError(err).Error("server connection error")
	}
	return monitor, nil
}

// parseDefaultColor parses the N:RRGGBB flag form: a load percentage
// threshold and the color to hold at or below it.
func parseDefaultColor(s string) (uint8, rgbmon.RGBColor, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, rgbmon.RGBColor{}, errors.Errorf("invalid default color %q: want N:RRGGBB", s)
	}
	minLoad, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil {
		return 0, rgbmon.RGBColor{}, errors.Wrapf(err, "invalid load threshold in %q", s)
	}
	color, err := rgbmon.ParseHex(parts[1])
	if err != nil {
		return 0, rgbmon.RGBColor{}, errors.Wrapf(err, "invalid color in %q", s)
	}
	return uint8(minLoad), color, nil
}

func writePidFile(pidFile string) error {
	log.WithField("path", pidFile).Debug("writing pid file")
	err := os.WriteFile(pidFile, []byte(strconv.Itoa(os.Getpid())), 0o644)
	return errors.Wrapf(err, "unable to create pid file %s", pidFile)
}
