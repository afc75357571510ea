// Package main generates a development CA and a server certificate for
// running VendorDesk over TLS, writing them under the "certs" directory.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/atinyakov/VendorDesk/internal/certgen"
)

func main() {
	dir := flag.String("dir", "certs", "output directory")
	hosts := flag.String("hosts", "localhost,127.0.0.1", "comma-separated server host names and IPs")
	flag.Parse()

	if err := run(*dir, strings.Split(*hosts, ",")); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Certificates generated into ./%s\n", *dir)
}

// run reuses ca.crt/ca.key from dir when present so previously distributed
// CA files stay valid, and always issues a fresh server.crt/server.key.
func run(dir string, hosts []string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	caCertPath := filepath.Join(dir, "ca.crt")
	caKeyPath := filepath.Join(dir, "ca.key")

	caCert, caKey, err := certgen.LoadCACredentials(caCertPath, caKeyPath)
	if errors.Is(err, os.ErrNotExist) {
		var bundle certgen.Bundle
		caCert, caKey, bundle, err = certgen.NewCA("VendorDesk Dev CA")
		if err != nil {
			return err
		}
		if err := bundle.Write(caCertPath, caKeyPath); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	var cleaned []string
	for _, h := range hosts {
		if h = strings.TrimSpace(h); h != "" {
			cleaned = append(cleaned, h)
		}
	}
	server, err := certgen.GenerateServerCertificate(cleaned, caCert, caKey)
	if err != nil {
		return err
	}
	return server.Write(filepath.Join(dir, "server.crt"), filepath.Join(dir, "server.key"))
}
