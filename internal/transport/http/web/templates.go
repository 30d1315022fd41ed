package web

const timelineTemplateStr = `<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<title>Venue timeline</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 0; background: #fafafa; color: #222; }
  header { padding: 12px 20px; background: #1f2937; color: #f9fafb; display: flex; gap: 24px; align-items: baseline; }
  header h1 { font-size: 18px; margin: 0; }
  header .meta { font-size: 13px; color: #cbd5e1; }
  main { padding: 16px 20px; }
  .legend span { display: inline-block; padding: 2px 8px; margin-right: 6px; font-size: 12px; border-radius: 3px; }
  .chart { display: grid; grid-template-columns: 220px 1fr; }
  .labels div { height: {{rowHeightPx}}px; line-height: {{rowHeightPx}}px; font-size: 13px; white-space: nowrap; overflow: hidden; text-overflow: ellipsis; }
  .labels a { color: inherit; text-decoration: none; }
  .labels .kind { color: #6b7280; font-size: 11px; margin-left: 4px; }
  .empty { color: #6b7280; padding: 40px 0; }
  form.upload { margin: 12px 0 20px; font-size: 13px; }
</style>
</head>
<body>
<header>
  <h1>Venue timeline</h1>
  {{if .DatasetID}}
  <span class="meta">{{.Source}} &middot; {{fmtDate .From}} - {{fmtDate .To}} &middot; {{len .Bars}} events{{if .Excluded}} &middot; {{.Excluded}} excluded{{end}}{{if .Skipped}} &middot; {{.Skipped}} skipped{{end}}</span>
  <a class="meta" href="/v1/datasets/snapshot">snapshot</a>
  {{end}}
</header>
<main>
  <form class="upload" method="post" action="/v1/datasets/upload" enctype="multipart/form-data">
    <input type="file" name="file" accept=".xlsx">
    <button type="submit">Import</button>
  </form>
  <div class="legend">
    <span style="background: {{index .Palette 0}}">setup</span>
    <span style="background: {{index .Palette 1}}">event</span>
    <span style="background: {{index .Palette 2}}">teardown</span>
  </div>
  {{if not .Bars}}
  <p class="empty">No dataset loaded.</p>
  {{else}}
  <div class="chart">
    <div class="labels">
      {{range .Bars}}
      <div title="{{range $i, $h := .Halls}}{{if $i}}, {{end}}{{$h}}{{end}}"><a href="/events/{{.ID}}">{{.Label}}</a>{{if .Kind}}<span class="kind">{{.Kind}}</span>{{end}}</div>
      {{end}}
    </div>
    <svg width="100%" height="{{.Height}}" xmlns="http://www.w3.org/2000/svg">
      <defs>
        {{range .Bars}}
        <linearGradient id="lite-{{.Index}}">
          {{range .Plan}}<stop offset="{{offset .Offset}}" stop-color="{{.Color}}" stop-opacity="0.33"/>{{end}}
        </linearGradient>
        {{if not .Finished}}
        <linearGradient id="progress-{{.Index}}">
          {{range .Fill}}<stop offset="{{offset .Offset}}" stop-color="{{.Color}}"/>{{end}}
        </linearGradient>
        {{end}}
        {{end}}
      </defs>
      {{range .Bars}}
      <g>
        <rect x="{{pct .Left}}" y="{{mul .Index rowHeightPx | add 4}}" width="{{pct .Width}}" height="20" rx="3" fill="url(#lite-{{.Index}})"/>
        {{if not .Finished}}
        <rect x="{{pct .Left}}" y="{{mul .Index rowHeightPx | add 4}}" width="{{pct .Done}}" height="20" rx="3" fill="url(#progress-{{.Index}})"/>
        {{end}}
      </g>
      {{end}}
    </svg>
  </div>
  {{end}}
</main>
<script>
(function() {
  var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
  var ws = new WebSocket(proto + location.host + '/ws');
  ws.onmessage = function(ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type === 'dataset_replaced') {
      location.reload();
    }
  };
})();
</script>
</body>
</html>`

const eventTemplateStr = `<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<title>{{.Label}}</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 20px; color: #222; }
  table { border-collapse: collapse; font-size: 14px; }
  td, th { padding: 4px 12px 4px 0; text-align: left; }
  .warn { color: #b45309; }
  .done { text-decoration: line-through; color: #6b7280; }
  .phase { display: inline-block; width: 10px; height: 10px; margin-right: 6px; }
</style>
</head>
<body>
<p><a href="/">&larr; timeline</a></p>
<h1>{{.Label}}</h1>
<p>{{.Record.Name}}{{if .Record.Kind}} &middot; {{.Record.Kind}}{{end}}{{if .Finished}} &middot; finished{{end}}</p>
<table>
  <tr><th>Start</th><td>{{fmtTime .Record.Start}}</td></tr>
  <tr><th>Setup</th><td>{{fmtTime .Record.Setup}}</td></tr>
  <tr><th>Event start</th><td>{{fmtTime .Record.EventStart}}</td></tr>
  <tr><th>Event end</th><td>{{fmtTime .Record.EventEnd}}</td></tr>
  <tr><th>Dismantle</th><td>{{fmtTime .Record.Dismantle}}</td></tr>
  <tr><th>End</th><td>{{fmtTime .Record.End}}</td></tr>
  <tr><th>Halls</th><td>{{range $i, $h := .Record.Halls}}{{if $i}}, {{end}}{{$h}}{{end}}</td></tr>
  <tr><th>Progress</th><td>{{printf "%.1f" .Record.Progress}}%</td></tr>
</table>
<h2>Phases</h2>
<table>
  <tr><td><span class="phase" style="background: {{index .Palette 0}}"></span>Setup</td><td>{{fmtMillis .Record.Times.Setup}}</td></tr>
  <tr><td><span class="phase" style="background: {{index .Palette 1}}"></span>Event</td><td>{{fmtMillis .Record.Times.Event}}</td></tr>
  <tr><td><span class="phase" style="background: {{index .Palette 2}}"></span>Teardown</td><td>{{fmtMillis .Record.Times.Dismantle}}</td></tr>
  <tr><td>Total</td><td>{{fmtMillis .Record.Times.Duration}}</td></tr>
</table>
{{if .Record.Warnings}}
<ul class="warn">
  {{range .Record.Warnings}}<li>{{.}}</li>{{end}}
</ul>
{{end}}
<h2>To-do</h2>
<ul id="todos">
  {{range .Todos}}
  <li data-id="{{.TodoID}}"><label><input type="checkbox" class="toggle"{{if .Done}} checked{{end}}> <span{{if .Done}} class="done"{{end}}>{{.Text}}</span></label></li>
  {{else}}
  <li class="none">Nothing to do.</li>
  {{end}}
</ul>
<form id="add-todo"><input name="text" placeholder="New item"> <button type="submit">Add</button></form>
<script>
(function() {
  var eventID = {{.Record.ID}};
  document.getElementById('add-todo').addEventListener('submit', function(ev) {
    ev.preventDefault();
    var text = ev.target.elements.text.value;
    fetch('/v1/events/' + encodeURIComponent(eventID) + '/todos', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify({text: text})
    }).then(function() { location.reload(); });
  });
  document.querySelectorAll('#todos .toggle').forEach(function(el) {
    el.addEventListener('change', function() {
      var id = el.closest('li').dataset.id;
      fetch('/v1/todos/' + encodeURIComponent(id) + '/toggle', {method: 'POST'})
        .then(function() { location.reload(); });
    });
  });
})();
</script>
</body>
</html>`
