package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"datehdr/tritonhttp"
)

func main() {
	currDir, err := os.Getwd()
	if err != nil {
		logrus.WithError(err).Fatal("Could not get current working directory")
	}
	defaultVhConfigPath := filepath.Join(currDir, "virtual_hosts.yaml")
	defaultDocroot := filepath.Join(currDir, "docroot_dirs")

	var port = flag.Int("port", 8080, "the localhost port to listen on")
	var vhConfigPath = flag.String("vh_config", defaultVhConfigPath, "path to the virtual hosting config file")
	var docrootDirsPath = flag.String("docroot", defaultDocroot, "path to the directory that contains all docroot dirs")
	var timeout = flag.Duration("timeout", tritonhttp.DefaultTimeout, "per-request read timeout")
	var verbose = flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	logrus.WithFields(logrus.Fields{
		"port":      *port,
		"vh_config": *vhConfigPath,
		"docroot":   *docrootDirsPath,
		"timeout":   *timeout,
	}).Info("Server configs")

	virtualHosts, err := tritonhttp.ParseVHConfigFile(*vhConfigPath, *docrootDirsPath)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load virtual hosts")
	}

	addr := fmt.Sprintf(":%v", *port)
	logrus.Infof("You can browse the website at http://localhost:%v/", *port)
	s := &tritonhttp.Server{
		Addr:         addr,
		VirtualHosts: virtualHosts,
		Timeout:      *timeout,
	}
	if err := s.ListenAndServe(); err != nil {
		logrus.WithError(err).Fatal("Server stopped")
	}
}
