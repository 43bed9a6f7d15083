package encoding

import (
	"encoding/xml"
	"errors"
	"io"
	"net/http"

	"github.com/diwise/api-sos/internal/pkg/application/ows"
	"github.com/diwise/api-sos/internal/pkg/domain"
)

const owsNamespace string = "http://www.opengis.net/ows/1.1"

type ExceptionReport struct {
	XMLName    xml.Name       `xml:"ows:ExceptionReport"`
	Attr_ows   string         `xml:"xmlns:ows,attr"`
	Version    string         `xml:"version,attr"`
	Exceptions []OwsException `xml:"ows:Exception"`
}

type OwsException struct {
	ExceptionCode string   `xml:"exceptionCode,attr"`
	Locator       string   `xml:"locator,attr,omitempty"`
	ExceptionText []string `xml:"ows:ExceptionText,omitempty"`
}

type jsonException struct {
	Code    string `json:"code"`
	Locator string `json:"locator,omitempty"`
	Text    string `json:"text,omitempty"`
}

type jsonExceptionReport struct {
	Version    string          `json:"version"`
	Exceptions []jsonException `json:"exceptions"`
}

func exceptionsOf(err error) []*ows.Exception {
	var composite *ows.Composite
	if errors.As(err, &composite) && composite.HasExceptions() {
		return composite.Exceptions
	}
	return []*ows.Exception{ows.AsException(err)}
}

// StatusOf returns the http status an exception report for err is sent with
func StatusOf(err error) int {
	var composite *ows.Composite
	if errors.As(err, &composite) && composite.HasExceptions() {
		return composite.Status()
	}
	return ows.AsException(err).Status()
}

func NewExceptionReport(err error) ExceptionReport {
	report := ExceptionReport{Attr_ows: owsNamespace, Version: domain.Version200}

	for _, e := range exceptionsOf(err) {
		oe := OwsException{ExceptionCode: string(e.Code), Locator: e.Locator}
		if e.Message != "" {
			oe.ExceptionText = append(oe.ExceptionText, e.Message)
		}
		report.Exceptions = append(report.Exceptions, oe)
	}

	return report
}

// WriteException sends err as an exception report. Clients that accept json
// get a json report, everybody else the OWS xml report.
func WriteException(w http.ResponseWriter, err error, asJSON bool) error {
	status := StatusOf(err)

	if asJSON {
		report := jsonExceptionReport{Version: domain.Version200}
		for _, e := range exceptionsOf(err) {
			report.Exceptions = append(report.Exceptions, jsonException{Code: string(e.Code), Locator: e.Locator, Text: e.Message})
		}

		w.Header().Add("Content-Type", ContentTypeJSON)
		w.WriteHeader(status)
		return writeJSON(w, report)
	}

	w.Header().Add("Content-Type", ContentTypeXML)
	w.WriteHeader(status)
	return writeXML(w, NewExceptionReport(err))
}

func writeXML(w io.Writer, doc any) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(doc)
}
