package http

import (
	"embed"
	"io/fs"
	nethttp "net/http"

	"github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse/pkg/currency"
)

//go:embed templates
var templatesFS embed.FS

// MainLayout layout común de todas las páginas.
const MainLayout = "layouts/main"

// NewViews construye el motor de plantillas HTML embebidas.
// Las plantillas disponen de la función money para formatear montos.
func NewViews(money currency.Formatter) *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic("plantillas embebidas: " + err.Error())
	}
	engine := html.NewFileSystem(nethttp.FS(sub), ".html")
	engine.AddFunc("money", func(d decimal.Decimal) string { return money.Format(d) })
	return engine
}
