package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/atinyakov/VendorDesk/internal/client"
	"github.com/atinyakov/VendorDesk/internal/models"
)

var (
	version   string
	buildDate string
)

func register(c *http.Client, baseURL string, v models.Vendor) {
	stored, err := client.Register(c, baseURL, v)
	if err != nil {
		fmt.Println("register error:", err)
		return
	}
	fmt.Printf("Vendor registered with id %d\n", stored.ID)
}

func login(c *http.Client, baseURL string, attempt models.LoginAttempt) {
	res, err := client.Login(c, baseURL, attempt.Email, attempt.Password)
	if err != nil {
		fmt.Println("login error:", err)
		return
	}
	switch {
	case res.Success():
		fmt.Println("Login successful")
	case res.Status == http.StatusServiceUnavailable:
		fmt.Println(models.MsgUnavailable)
	default:
		fmt.Println(models.MsgInvalidCredentials)
	}
}

func search(c *http.Client, baseURL string, q models.VendorQuery) {
	vendors, err := client.Search(c, baseURL, q)
	if err != nil {
		fmt.Println("search error:", err)
		return
	}
	if len(vendors) == 0 {
		fmt.Println("No vendors found")
		return
	}
	for _, v := range vendors {
		fmt.Printf("%d\t%s\t%s\t%s\t%s\n", v.ID, v.Name, v.Email, v.Phone, v.Address)
	}
}

// repl runs the interactive shell loop.
func repl(c *http.Client, baseURL string) {
	prompt := client.NewPrompter(os.Stdin, os.Stdout)

	for {
		line, ok := prompt.Line("vendordesk> ")
		if !ok {
			break
		}
		switch line {
		case "":
			continue
		case "help":
			fmt.Println("Available commands: help, register, login, search, exit")
		case "register":
			register(c, baseURL, prompt.Vendor())
		case "login":
			login(c, baseURL, prompt.Credentials())
		case "search":
			search(c, baseURL, prompt.Query())
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// main parses command-line flags and dispatches to a one-shot command or the shell.
func main() {
	var (
		cmd     string
		baseURL string
		caFile  string
		vendor  models.Vendor
		showVer bool
	)

	flag.StringVar(&cmd, "cmd", "", "command: register | login | search | shell")
	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.StringVar(&caFile, "ca", "", "path to CA cert for TLS servers")
	flag.StringVar(&vendor.Name, "name", "", "vendor name")
	flag.StringVar(&vendor.Email, "email", "", "vendor email")
	flag.StringVar(&vendor.Phone, "phone", "", "vendor phone")
	flag.StringVar(&vendor.Address, "address", "", "vendor address")
	flag.StringVar(&vendor.Password, "password", "", "vendor password")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("VendorDesk Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	c, err := client.NewHTTPClient(caFile)
	if err != nil {
		log.Fatal(err)
	}

	switch cmd {
	case "register":
		if vendor.Email == "" || vendor.Password == "" {
			log.Fatal("please provide -email and -password")
		}
		register(c, baseURL, vendor)
	case "login":
		login(c, baseURL, models.LoginAttempt{Email: vendor.Email, Password: vendor.Password})
	case "search":
		search(c, baseURL, models.VendorQuery{
			Name:    vendor.Name,
			Email:   vendor.Email,
			Phone:   vendor.Phone,
			Address: vendor.Address,
		})
	case "shell":
		repl(c, baseURL)
	default:
		log.Fatalf("unknown command: %s", cmd)
	}
}
