package pdf

// Template names accepted by the renderer.
const (
	TemplateGastos      = "gastos"
	TemplateImpresiones = "impresiones"
	TemplateGeneral     = "general"
)

const baseStyle = `<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #1f2937; font-size: 12px; }
  h1 { font-size: 20px; margin-bottom: 2px; }
  .periodo { color: #6b7280; margin-bottom: 16px; }
  table { width: 100%; border-collapse: collapse; margin-top: 12px; }
  th { text-align: left; background: #f3f4f6; padding: 6px 8px; border-bottom: 2px solid #d1d5db; }
  td { padding: 6px 8px; border-bottom: 1px solid #e5e7eb; }
  td.num, th.num { text-align: right; }
  tfoot td { font-weight: bold; border-top: 2px solid #d1d5db; }
  .cards { display: flex; gap: 12px; margin-top: 8px; }
  .card { flex: 1; border: 1px solid #e5e7eb; border-radius: 6px; padding: 10px; }
  .card .label { color: #6b7280; font-size: 10px; text-transform: uppercase; }
  .card .value { font-size: 16px; font-weight: bold; margin-top: 2px; }
  .positivo { color: #15803d; }
  .negativo { color: #b91c1c; }
  .footer { margin-top: 24px; color: #9ca3af; font-size: 10px; }
</style>`

var reportTemplates = map[string]string{
	TemplateGastos: `<!DOCTYPE html>
<html lang="es"><head><meta charset="UTF-8"><title>Reporte de Gastos</title>` + baseStyle + `</head>
<body>
  <h1>Reporte de Gastos</h1>
  <div class="periodo">Período: {{title .Periodo}}</div>

  <div class="cards">
    <div class="card"><div class="label">Total gastado</div><div class="value">{{money .TotalGastos}}</div></div>
    <div class="card"><div class="label">Registros</div><div class="value">{{.Cantidad}}</div></div>
  </div>

  <table>
    <thead><tr><th>Categoría</th><th class="num">Cantidad</th><th class="num">Total</th><th class="num">Porcentaje</th></tr></thead>
    <tbody>
      {{range .Categorias}}<tr><td>{{title .Categoria}}</td><td class="num">{{.Cantidad}}</td><td class="num">{{money .Total}}</td><td class="num">{{percent .Porcentaje}}</td></tr>
      {{end}}
    </tbody>
    <tfoot><tr><td>Total</td><td></td><td class="num">{{money .TotalGastos}}</td><td></td></tr></tfoot>
  </table>

  <div class="footer">Generado el {{datetime .GeneradoEn}}</div>
</body></html>`,

	TemplateImpresiones: `<!DOCTYPE html>
<html lang="es"><head><meta charset="UTF-8"><title>Reporte de Impresiones</title>` + baseStyle + `</head>
<body>
  <h1>Reporte de Impresiones</h1>
  <div class="periodo">Período: {{title .Periodo}}</div>

  <div class="cards">
    <div class="card"><div class="label">Impresiones</div><div class="value">{{.Impresiones}}</div></div>
    <div class="card"><div class="label">Páginas</div><div class="value">{{.Paginas}}</div></div>
    <div class="card"><div class="label">Ingresos</div><div class="value">{{money .Ingresos}}</div></div>
  </div>

  {{if .ResumenPorMes}}
  <table>
    <thead><tr><th>Mes</th><th class="num">Impresiones</th><th class="num">Páginas</th><th class="num">Ingresos</th></tr></thead>
    <tbody>
      {{range .ResumenPorMes}}<tr><td>{{title .Label}}</td><td class="num">{{.Impresiones}}</td><td class="num">{{.Paginas}}</td><td class="num">{{money .Ingresos}}</td></tr>
      {{end}}
    </tbody>
  </table>
  {{end}}

  <table>
    <thead><tr><th>Fecha</th><th>Usuario</th><th>Tipo</th><th class="num">Páginas</th><th class="num">Ingreso</th></tr></thead>
    <tbody>
      {{range .Filas}}<tr><td>{{date .Fecha}}</td><td>{{title .Usuario}}</td><td>{{.Tipo}}</td><td class="num">{{.Paginas}}</td><td class="num">{{money .Ingreso}}</td></tr>
      {{end}}
    </tbody>
  </table>

  <div class="footer">Generado el {{datetime .GeneradoEn}}</div>
</body></html>`,

	TemplateGeneral: `<!DOCTYPE html>
<html lang="es"><head><meta charset="UTF-8"><title>Reporte General</title>` + baseStyle + `</head>
<body>
  <h1>Reporte General</h1>
  <div class="periodo">Período: {{title .Periodo}}</div>

  <div class="cards">
    <div class="card"><div class="label">Ingresos</div><div class="value">{{money .TotalIngresos}}</div></div>
    <div class="card"><div class="label">Gastos</div><div class="value">{{money .TotalGastos}}</div></div>
    <div class="card"><div class="label">Ganancia neta</div>
      <div class="value {{if .Rentable}}positivo{{else}}negativo{{end}}">{{money .GananciaNeta}}</div></div>
    <div class="card"><div class="label">Rentabilidad</div><div class="value">{{percent .Rentabilidad}}</div></div>
  </div>

  <div class="cards">
    <div class="card"><div class="label">Impresiones</div><div class="value">{{.TotalImpresiones}}</div></div>
    <div class="card"><div class="label">Páginas</div><div class="value">{{.TotalPaginas}}</div></div>
  </div>

  <table>
    <thead><tr><th>Gasto</th><th class="num">Total</th></tr></thead>
    <tbody>
      <tr><td>Papel</td><td class="num">{{money .GastosPapel}}</td></tr>
      <tr><td>Tinta</td><td class="num">{{money .GastosTinta}}</td></tr>
      <tr><td>Mantenimiento</td><td class="num">{{money .GastosMantenimiento}}</td></tr>
      <tr><td>Otros</td><td class="num">{{money .OtrosGastos}}</td></tr>
    </tbody>
    <tfoot><tr><td>Total</td><td class="num">{{money .TotalGastos}}</td></tr></tfoot>
  </table>

  <div class="footer">Generado el {{datetime .GeneradoEn}}</div>
</body></html>`,
}
