// Package i18n holds the user-facing copy in Spanish and English.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. English text doubles as the key and the English rendering.
const (
	KeyTitle           = "Scientific Name Corrector"
	KeyUploadLabel     = "Upload your Excel file"
	KeyColumnLabel     = "Select the column with the scientific names:"
	KeyCorrectButton   = "Correct names"
	KeyDownloadButton  = "Download corrected file"
	KeyProcessing      = "Processing, this may take a few seconds..."
	KeyDone            = "Correction completed"
	KeyFileError       = "Error processing the file: %v"
	KeyRowsLoaded      = "%d rows loaded from %s"
	KeyPreviewTruncate = "Showing the first %d of %d rows"
	KeySummaryMatched  = "%d of %d names matched"
	KeyConfidence      = "Confidence: mean %.1f, median %.1f"
	KeyNoFile          = "Choose a file first"
	KeyNoResult        = "There is no corrected file to download yet"
	KeyCancelled       = "The correction was interrupted before it finished"

	KeyColCorrectedName = "corrected_name"
	KeyColGenus         = "genus"
	KeyColFamily        = "family"
	KeyColStatus        = "status"

	KeyNotFound        = "not found"
	KeyHTTPError       = "Error %d"
	KeyConnectionError = "Connection error"
)

var spanish = map[string]string{
	KeyTitle:           "Corregidor de Nombres Científicos",
	KeyUploadLabel:     "Sube tu archivo Excel",
	KeyColumnLabel:     "Selecciona la columna con los nombres científicos:",
	KeyCorrectButton:   "Corregir nombres",
	KeyDownloadButton:  "Descargar archivo corregido",
	KeyProcessing:      "Procesando, esto puede tardar unos segundos...",
	KeyDone:            "Corrección completada",
	KeyFileError:       "Error al procesar el archivo: %v",
	KeyRowsLoaded:      "%d filas cargadas de %s",
	KeyPreviewTruncate: "Mostrando las primeras %d de %d filas",
	KeySummaryMatched:  "%d de %d nombres encontrados",
	KeyConfidence:      "Confianza: media %.1f, mediana %.1f",
	KeyNoFile:          "Primero elige un archivo",
	KeyNoResult:        "Todavía no hay un archivo corregido para descargar",
	KeyCancelled:       "La corrección se interrumpió antes de terminar",

	KeyColCorrectedName: "nombre_corregido",
	KeyColGenus:         "genero",
	KeyColFamily:        "familia",
	KeyColStatus:        "estatus",

	KeyNotFound:        "No encontrado",
	KeyHTTPError:       "Error %d",
	KeyConnectionError: "Error de conexión",
}

var (
	supported = []language.Tag{language.Spanish, language.English}
	matcher   = language.NewMatcher(supported)
	messages  = buildCatalog()
)

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range spanish {
		if err := b.SetString(language.Spanish, key, msg); err != nil {
			panic(fmt.Sprintf("i18n: bad catalog entry %q: %v", key, err))
		}
		if err := b.SetString(language.English, key, key); err != nil {
			panic(fmt.Sprintf("i18n: bad catalog entry %q: %v", key, err))
		}
	}
	return b
}

// Labels renders messages for one locale
type Labels struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns labels for the closest supported locale; unknown locales fall
// back to Spanish.
func New(locale string) *Labels {
	tag := language.Spanish
	if parsed, err := language.Parse(locale); err == nil {
		_, idx, conf := matcher.Match(parsed)
		if conf != language.No {
			tag = supported[idx]
		}
	}
	return &Labels{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(messages)),
	}
}

// Lang returns the BCP 47 base language, e.g. "es"
func (l *Labels) Lang() string {
	base, _ := l.tag.Base()
	return base.String()
}

// T renders a message key with arguments
func (l *Labels) T(key string, args ...interface{}) string {
	return l.printer.Sprintf(key, args...)
}

// CorrectionColumns returns the headers appended to the output table
func (l *Labels) CorrectionColumns() []string {
	return []string{
		l.T(KeyColCorrectedName),
		l.T(KeyColGenus),
		l.T(KeyColFamily),
		l.T(KeyColStatus),
	}
}

// NotFound is the status of a name the service did not match
func (l *Labels) NotFound() string {
	return l.T(KeyNotFound)
}

// HTTPError is the status of a row whose request got a non-success response
func (l *Labels) HTTPError(code int) string {
	return l.T(KeyHTTPError, code)
}

// ConnectionError is the status of a row whose request got no response
func (l *Labels) ConnectionError() string {
	return l.T(KeyConnectionError)
}
