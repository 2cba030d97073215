package render

import "html/template"

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; max-width: 800px; margin: 0 auto; padding: 20px; background-color: #f5f5f5; }
.article-container { background-color: white; padding: 20px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
.article-header { text-align: center; margin-bottom: 30px; }
.article-title { font-size: 2em; color: #333; margin-bottom: 10px; }
.article-image { max-width: 100%; height: auto; border-radius: 8px; margin: 20px 0; }
.censor-review { background-color: #fff3cd; padding: 20px; border-radius: 8px; margin: 20px 0; }
.censor-review h3 { color: #856404; margin-top: 0; }
.status { margin: 20px 0; }
.status li.done::before { content: "\2713  "; color: #2e7d32; }
.status li.pending::before { content: "\2717  "; color: #c62828; }
blockquote { border-left: 4px solid #007bff; margin: 1em 0; padding: 0.5em 1em; background-color: #f8f9fa; }
code { background-color: #f8f9fa; padding: 0.2em 0.4em; border-radius: 3px; font-family: monospace; }
pre { background-color: #f8f9fa; padding: 1em; border-radius: 4px; overflow-x: auto; }
table { width: 100%; border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid #dee2e6; padding: 0.5em; text-align: left; vertical-align: top; }
th { background-color: #f8f9fa; }
</style>
</head>
<body>
<div class="article-container">
  <div class="article-header">
    <h1 class="article-title">{{.Title}}</h1>
  </div>
  {{if .ImagePath}}<img src="/{{.ImagePath}}" alt="{{.Title}}" class="article-image">{{end}}
  <div class="article-content">
{{.Content}}
  </div>
  <div class="censor-review">
    <h3>Editorial review</h3>
{{.Review}}
  </div>
  <div class="status">
    <h3>Processing status</h3>
    <ul>
    {{range .Stages}}<li class="{{if .Done}}done{{else}}pending{{end}}">{{.Label}}</li>
    {{end}}</ul>
  </div>
  <div class="logs">
    <h3>Agent actions</h3>
    <table>
      <tr><th>Agent</th><th>Action</th><th>Details</th></tr>
      {{range .Logs.Actions}}<tr><td>{{.Agent}}</td><td>{{.Action}}</td><td>{{.Details}}</td></tr>
      {{end}}
    </table>
    <h3>Interactions</h3>
    <table>
      <tr><th>From</th><th>To</th><th>Message</th></tr>
      {{range .Logs.Interactions}}<tr><td>{{.From}}</td><td>{{.To}}</td><td>{{.Message}}</td></tr>
      {{end}}
    </table>
  </div>
</div>
</body>
</html>
`))
