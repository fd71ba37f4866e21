package templates

import "html/template"

// Pages and fragments share one template set so fragments can be reused
// inside full pages and returned on their own to htmx.
var views = template.Must(template.New("views").Funcs(funcs).Parse(`
{{- define "layout" -}}
<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Shell.Title}} · gestionEmpl</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://cdn.tailwindcss.com"></script>
<style>
  body { font-family: 'Inter', system-ui, sans-serif; }
  .glass { background: rgba(255,255,255,0.7); backdrop-filter: blur(24px); box-shadow: 0 8px 32px 0 rgba(31,38,135,0.10); }
  .htmx-request .spinner { display: inline-block; }
  .spinner { display: none; }
  @keyframes fade-in { from { opacity: 0; transform: translateY(8px); } to { opacity: 1; transform: none; } }
  .animate-fade-in { animation: fade-in .25s ease-out; }
</style>
</head>
<body class="min-h-screen bg-gradient-to-br from-blue-50 via-white to-cyan-50 text-blue-900">
<div class="flex min-h-screen">
  <aside class="w-60 glass border-r border-blue-100 p-6 hidden md:flex md:flex-col gap-8">
    <a href="/" class="text-2xl font-extrabold bg-gradient-to-r from-blue-600 to-cyan-400 bg-clip-text text-transparent">gestionEmpl</a>
    <nav class="flex flex-col gap-1">
      {{- range .Shell.Nav}}
      <a href="{{.Href}}" class="px-4 py-2 rounded-xl font-semibold transition {{if .Active}}bg-blue-100 text-blue-700{{else}}text-blue-500 hover:bg-blue-50{{end}}">{{.Label}}</a>
      {{- end}}
    </nav>
  </aside>
  <div class="flex-1 flex flex-col">
    <header class="glass border-b border-blue-100 px-8 py-4 flex items-center justify-between">
      <h1 class="text-xl font-bold">{{.Shell.Title}}</h1>
      <div class="flex items-center gap-3 text-sm text-blue-500">
        <span class="w-9 h-9 rounded-full bg-gradient-to-br from-blue-400 to-cyan-300 inline-block"></span>
        <span>Admin</span>
      </div>
    </header>
    <main class="p-8 flex-1">{{.Body}}</main>
  </div>
</div>
{{template "toasts" .Shell.Toasts}}
<script>
  // Toasts remove themselves after their data-ttl.
  function dismissToasts(root) {
    root.querySelectorAll('[data-ttl]').forEach(function (el) {
      if (el.dataset.armed) return;
      el.dataset.armed = '1';
      setTimeout(function () { el.remove(); }, parseInt(el.dataset.ttl, 10));
    });
  }
  document.addEventListener('DOMContentLoaded', function () { dismissToasts(document); });
  document.body.addEventListener('htmx:load', function (e) { dismissToasts(e.target.ownerDocument || document); });
  document.body.addEventListener('htmx:oobAfterSwap', function () { dismissToasts(document); });
</script>
</body>
</html>
{{- end -}}

{{- define "toasts" -}}
<div id="toasts" class="fixed bottom-8 right-8 z-50 flex flex-col gap-2"{{if .OOB}} hx-swap-oob="true"{{end}}>
  {{- range .Items}}
  <div class="toast px-6 py-3 rounded-xl shadow-lg font-semibold text-white animate-fade-in {{if eq .Kind "success"}}bg-gradient-to-r from-blue-500 to-blue-400{{else}}bg-red-500{{end}}" data-kind="{{.Kind}}" data-ttl="{{ms $.TTL}}" role="status">{{.Message}}</div>
  {{- end}}
</div>
{{- end -}}

{{- define "dashboard" -}}
<section class="grid grid-cols-1 sm:grid-cols-2 xl:grid-cols-4 gap-6">
  {{- range .Stats}}
  <div class="glass rounded-2xl border border-blue-100 p-6">
    <div class="text-sm text-blue-400 font-semibold">{{.Label}}</div>
    <div class="text-3xl font-extrabold mt-2">{{.Value}}</div>
  </div>
  {{- end}}
</section>
<section class="grid grid-cols-1 lg:grid-cols-3 gap-6 mt-8">
  <div class="glass rounded-2xl border border-blue-100 p-6 lg:col-span-2">
    <h2 class="font-bold mb-4">{{.AreaTitle}}</h2>
    {{areaSVG "areaGradient" .AreaTitle .Area}}
    <div class="flex justify-between text-xs text-blue-400 mt-2">
      {{- range .Area}}<span>{{.Label}}</span>{{end -}}
    </div>
  </div>
  <div class="glass rounded-2xl border border-blue-100 p-6">
    <h2 class="font-bold mb-4">{{.DonutTitle}}</h2>
    <div class="flex items-center gap-6">
      {{donutSVG .DonutTitle .Donut}}
      <ul class="text-sm flex flex-col gap-1">
        {{- range segments .Donut}}
        <li class="flex items-center gap-2"><span class="w-3 h-3 rounded-full inline-block" style="background: {{.Color}}"></span>{{.Label}} <span class="text-blue-400">{{percent .}}</span></li>
        {{- end}}
      </ul>
    </div>
  </div>
</section>
{{- end -}}

{{- define "employees" -}}
<div class="glass rounded-2xl border border-blue-100 p-6">
  <div class="flex flex-col md:flex-row md:items-center md:justify-between gap-4 mb-4">
    <h2 class="text-xl font-bold">Employees</h2>
    <div class="flex gap-2 items-center">
      <input type="search" name="q" value="{{.Table.Page.Query}}" placeholder="Search employees..." aria-label="Search employees"
             class="px-4 py-2 rounded border border-blue-200 bg-white/80 placeholder-blue-400"
             hx-get="/employees/table" hx-trigger="input changed delay:300ms, search" hx-target="#employee-table" hx-swap="outerHTML">
      <a href="/employees/export.xlsx?q={{.Table.Page.Query}}" class="px-4 py-2 rounded-full bg-blue-50 text-blue-500 font-semibold hover:bg-blue-100">Export</a>
    </div>
  </div>
  <form class="flex flex-wrap items-center gap-2 mb-4" hx-post="/employees" hx-encoding="multipart/form-data" hx-target="#employee-table" hx-swap="outerHTML"
        hx-on::after-request="if (event.detail.successful) this.reset()">
    <span class="font-semibold">Scan ID Card to Add Employee</span>
    <input type="file" name="file" accept="image/*" class="px-4 py-2 rounded border border-blue-200 bg-white/80">
    <button type="submit" class="bg-gradient-to-r from-blue-400 to-blue-600 text-white px-4 py-2 rounded-full font-semibold shadow">Scan &amp; Add <span class="spinner">…</span></button>
  </form>
  {{template "table" .Table}}
</div>
{{- end -}}

{{- define "table" -}}
<div id="employee-table" class="overflow-x-auto rounded-xl">
  <table class="min-w-full text-sm">
    <thead>
      <tr class="bg-blue-100/60 text-blue-700">
        <th class="px-4 py-2 text-left font-semibold">#</th>
        {{- range fields}}
        <th class="px-4 py-2 text-left font-semibold">{{label .}}</th>
        {{- end}}
        <th class="px-4 py-2 text-left font-semibold">Actions</th>
      </tr>
    </thead>
    <tbody>
      {{- range .Rows}}
      {{- if .Editing}}{{template "edit-row" .}}{{else}}{{template "row" .}}{{end}}
      {{- else}}
      <tr><td colspan="9" class="py-8 text-center text-blue-400">No employees found.</td></tr>
      {{- end}}
    </tbody>
  </table>
  {{- if gt .Page.Pages 1}}
  <nav class="flex items-center justify-between mt-4 text-sm" aria-label="Pagination">
    <span class="text-blue-400">{{.Page.Total}} employees · page {{.Page.Page}} of {{.Page.Pages}}</span>
    <div class="flex gap-1">
      {{- $q := .Page.Query}}{{$cur := .Page.Page}}
      {{- if .Page.HasPrev}}
      <button class="px-3 py-1 rounded bg-blue-50 text-blue-500" hx-get="/employees/table?q={{urlq $q}}&page={{add $cur -1}}" hx-target="#employee-table" hx-swap="outerHTML">Previous</button>
      {{- end}}
      {{- range seq .Page.Pages}}
      <button class="px-3 py-1 rounded {{if eq . $cur}}bg-blue-500 text-white{{else}}bg-blue-50 text-blue-500{{end}}" hx-get="/employees/table?q={{urlq $q}}&page={{.}}" hx-target="#employee-table" hx-swap="outerHTML">{{.}}</button>
      {{- end}}
      {{- if .Page.HasNext}}
      <button class="px-3 py-1 rounded bg-blue-50 text-blue-500" hx-get="/employees/table?q={{urlq $q}}&page={{add $cur 1}}" hx-target="#employee-table" hx-swap="outerHTML">Next</button>
      {{- end}}
    </div>
  </nav>
  {{- end}}
</div>
{{- end -}}

{{- define "row" -}}
<tr id="employee-{{.Employee.ID}}" class="even:bg-blue-50/40 hover:bg-blue-100/60 transition">
  <td class="px-4 py-2">{{.Index}}</td>
  {{- $e := .Employee}}
  {{- range fields}}
  <td class="px-4 py-2 cursor-pointer hover:bg-blue-200/60" hx-get="/employees/{{$e.ID}}/edit" hx-target="#employee-table" hx-swap="outerHTML">{{field $e .}}</td>
  {{- end}}
  <td class="px-4 py-2 flex gap-2">
    <a href="/employees/{{$e.ID}}/questionnaire.pdf" class="px-3 py-1 rounded bg-blue-100 text-blue-700 font-semibold" title="Download">PDF</a>
    <a href="/employees/{{$e.ID}}" class="px-3 py-1 rounded bg-blue-50 text-blue-500 font-semibold">Open</a>
    <button class="px-3 py-1 rounded bg-blue-50 text-blue-500 font-semibold" hx-delete="/employees/{{$e.ID}}" hx-confirm="Delete this employee?" hx-target="#employee-table" hx-swap="outerHTML">Delete</button>
  </td>
</tr>
{{- end -}}

{{- define "edit-row" -}}
<tr id="employee-{{.Employee.ID}}" class="bg-blue-50/60" data-editing="true">
  <td class="px-4 py-2">{{.Index}}</td>
  {{- $e := .Employee}}
  {{- range fields}}
  <td class="px-4 py-2"><input name="{{.}}" value="{{field $e .}}" aria-label="{{label .}}" class="px-2 py-1 rounded border border-blue-200 w-full"></td>
  {{- end}}
  <td class="px-4 py-2 flex gap-2">
    <button class="px-3 py-1 rounded bg-green-500 text-white font-semibold" hx-put="/employees/{{$e.ID}}" hx-include="closest tr" hx-target="#employee-table" hx-swap="outerHTML"{{if .Saving}} disabled{{end}}>Save</button>
    <button class="px-3 py-1 rounded bg-blue-50 text-blue-500 font-semibold" hx-get="/employees/{{$e.ID}}/row" hx-target="#employee-table" hx-swap="outerHTML">Cancel</button>
  </td>
</tr>
{{- end -}}

{{- define "employee-page" -}}
<div class="glass rounded-2xl border border-blue-100 p-8 max-w-xl">
  {{- if .Found}}
  <h2 class="text-lg font-bold mb-4">Edit Employee</h2>
  <form class="flex flex-col gap-4" hx-put="/employees/{{.Employee.ID}}?from=page" hx-swap="none">
    {{- $e := .Employee}}
    {{- range fields}}
    <label class="flex flex-col gap-1 text-sm font-semibold">{{label .}}
      <input name="{{.}}" value="{{field $e .}}" class="px-4 py-2 rounded border border-blue-200 bg-white/80 font-normal">
    </label>
    {{- end}}
    <div class="flex gap-2 mt-2">
      <button type="submit" class="bg-gradient-to-r from-blue-400 to-blue-600 text-white px-4 py-2 rounded-full font-semibold shadow">Save</button>
      <a href="/employees" class="px-4 py-2 rounded-full bg-blue-50 text-blue-500 font-semibold">Cancel</a>
    </div>
  </form>
  {{- else}}
  <p class="text-blue-400" data-state="not-found">{{.Message}}</p>
  <a href="/employees" class="inline-block mt-4 px-4 py-2 rounded-full bg-blue-50 text-blue-500 font-semibold">Back to employees</a>
  {{- end}}
</div>
{{- end -}}

{{- define "placeholder" -}}
<div class="glass rounded-2xl border border-blue-100 p-8 text-blue-400">{{.}} is coming soon.</div>
{{- end -}}
`))
