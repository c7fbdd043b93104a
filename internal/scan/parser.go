package scan

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/lodex23/htbCli/internal/challenge"
)

// We only model the XML bits we care about.

type nmapRun struct {
	XMLName xml.Name   `xml:"nmaprun"`
	Hosts   []nmapHost `xml:"host"`
}

type nmapHost struct {
	Ports nmapPorts `xml:"ports"`
}

type nmapPorts struct {
	Ports []nmapPort `xml:"port"`
}

type nmapPort struct {
	Protocol string      `xml:"protocol,attr"`
	PortID   int         `xml:"portid,attr"`
	State    nmapState   `xml:"state"`
	Service  nmapService `xml:"service"`
}

type nmapState struct {
	State string `xml:"state,attr"`
}

type nmapService struct {
	Name    string `xml:"name,attr"`
	Product string `xml:"product,attr"`
	Version string `xml:"version,attr"`
}

var portsLine = regexp.MustCompile(`(?m)Ports:\s*(.*)$`)

// Parse reads an nmap report in XML or grepable (gnmap) form and returns the
// open services it describes. Closed and filtered ports are dropped;
// malformed entries are skipped.
func Parse(path string) ([]challenge.ServiceRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scan report: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".xml") || strings.HasPrefix(strings.TrimSpace(string(data)), "<?xml") {
		return parseXML(data)
	}
	return parseGnmap(string(data)), nil
}

func parseXML(data []byte) ([]challenge.ServiceRecord, error) {
	var run nmapRun
	if err := xml.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("parse nmap xml: %w", err)
	}
	services := []challenge.ServiceRecord{}
	for _, host := range run.Hosts {
		for _, port := range host.Ports.Ports {
			if port.State.State != "open" {
				continue
			}
			services = append(services, challenge.ServiceRecord{
				Port:    port.PortID,
				Proto:   port.Protocol,
				State:   port.State.State,
				Service: port.Service.Name,
				Product: port.Service.Product,
				Version: port.Service.Version,
			})
		}
	}
	return services, nil
}

// parseGnmap handles lines like:
//
//	Host: 10.10.10.10 ()  Ports: 22/open/tcp//ssh///, 80/open/tcp//http///
func parseGnmap(text string) []challenge.ServiceRecord {
	services := []challenge.ServiceRecord{}
	for _, match := range portsLine.FindAllStringSubmatch(text, -1) {
		for _, entry := range strings.Split(match[1], ",") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			parts := strings.Split(entry, "/")
			if len(parts) < 5 {
				continue
			}
			port, err := strconv.Atoi(parts[0])
			if err != nil {
				continue
			}
			if parts[1] != "open" {
				continue
			}
			services = append(services, challenge.ServiceRecord{
				Port:    port,
				Proto:   parts[2],
				State:   parts[1],
				Service: parts[4],
			})
		}
	}
	return services
}
