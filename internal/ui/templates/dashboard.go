// Package templates holds the dashboard shell the SSE endpoints patch into.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Dashboard renders the static scaffold. Chart containers are filled by the
// Datastar SSE endpoints after load.
func Dashboard() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, dashboardHTML)
		return err
	})
}

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>Orders Analytics Dashboard</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@main/bundles/datastar.js"></script>
<style>
body { font-family: system-ui, sans-serif; margin: 0; background: #f3f4f6; color: #111827; }
.container { max-width: 1200px; margin: 0 auto; padding: 1.5rem; }
.card { background: #fff; border: 1px solid #e5e7eb; border-radius: .75rem; padding: 1.25rem 1.5rem; margin-bottom: 1.25rem; }
.kpi-grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 1rem; }
.kpi-card { display: flex; flex-direction: column; gap: .25rem; }
.kpi-label { font-size: .85rem; text-transform: uppercase; letter-spacing: .08em; color: #9ca3af; }
.kpi-value { font-size: 1.8rem; font-weight: 700; }
.empty-state { color: #6b7280; padding: 2rem; text-align: center; }
.controls { display: flex; gap: .75rem; align-items: end; flex-wrap: wrap; }
.controls label { display: flex; flex-direction: column; font-size: .85rem; gap: .25rem; }
</style>
</head>
<body>
<div class="container" data-on-load="@get('/sse/refresh-all')">
<h1>Orders Analytics Dashboard</h1>
<p>Explore orders, revenue, and the status/priority mix. Status codes: F = Filled, O = Open, P = Pending.</p>
<div class="card controls">
<label>Start date <input type="date" data-bind-start value="1992-01-01"/></label>
<label>End date <input type="date" data-bind-end value="1998-12-31"/></label>
<button data-on-click="@get('/sse/refresh-all?start='+$start+'&end='+$end)">Apply</button>
</div>
<div class="card"><div id="summary-content" class="empty-state">Loading KPIs…</div></div>
<div class="card"><h2>Time trends</h2><div id="monthly-content" class="empty-state">Loading monthly trend…</div></div>
<div class="card"><h2>Yearly performance and growth</h2><div id="yearly-content" class="empty-state">Loading yearly trend…</div></div>
<div class="card"><h2>Seasonality</h2><div id="season-content" class="empty-state">Loading month comparison…</div></div>
<div class="card"><h2>Order mix</h2><div id="matrix-content" class="empty-state">Loading revenue matrix…</div></div>
<div class="card"><h2>Value distribution</h2><div id="histogram-content" class="empty-state">Loading histogram…</div></div>
</div>
</body>
</html>
`
