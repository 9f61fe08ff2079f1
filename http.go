package main

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"strconv"
)

var indexPageTemplate = template.Must(template.New("index").Parse(`
	<!DOCTYPE html>
	<html>
	<head>
		<title>QuizSnap</title>
	</head>
	<body>
		<h1>QuizSnap is running</h1>
		<p>HTTP API:</p>
		<ul>
			<li><a href="/status">Status</a></li>
			<li><a href="/trigger">Trigger Sequence</a></li>
			<li><a href="/recipients">Recipients</a></li>
			<li><a href="/hotkey">Hotkey Settings</a></li>
		</ul>
	</body>
	</html>
`))

var statusPageTemplate = template.Must(template.New("status").Parse(`
	<!DOCTYPE html>
	<html>
	<head>
		<title>Status</title>
	</head>
	<body>
		<h1>Sequence Status</h1>
		<p>State: <b>{{.State}}</b></p>

		<h2>Answered Questions</h2>
		{{range .History}}
		<h3>{{.UUID}} ({{.Type}})</h3>
		<pre>{{.Question}}</pre>
		<pre>{{.Answer}}</pre>
		<hr>
		{{else}}
		<p>No questions answered yet.</p>
		{{end}}
	</body>
	</html>
`))

var recipientsPageTemplate = template.Must(template.New("recipients").Parse(`
	<!DOCTYPE html>
	<html>
	<head>
		<title>Recipients</title>
	</head>
	<body>
		<h1>Recipients</h1>
		<table border="1">
			<tr><th>Name</th><th>Email</th><th>Checked</th><th>Valid</th></tr>
			{{range .}}
			<tr><td>{{.Name}}</td><td>{{.Email}}</td><td>{{.Checked}}</td><td>{{.Valid}}</td></tr>
			{{end}}
		</table>
		<form method="POST" action="/recipients">
			<label for="name">Name:</label>
			<input type="text" id="name" name="name"><br>
			<label for="email">Email:</label>
			<input type="text" id="email" name="email"><br>
			<label for="checked">Checked:</label>
			<input type="checkbox" id="checked" name="checked"><br><br>
			<input type="submit" value="Add">
		</form>
	</body>
	</html>
`))

var hotkeyPageTemplate = template.Must(template.New("hotkey").Parse(`
	<!DOCTYPE html>
	<html>
	<head>
		<title>Hotkey Settings</title>
	</head>
	<body>
		<h1>Hotkey Settings</h1>
		<p>Hold the digit matching the current minute's ones digit for at least the configured duration to trigger the sequence.</p>
		<form method="POST" action="/hotkey">
			<label for="enabled">Enabled:</label>
			<input type="checkbox" id="enabled" name="enabled" {{if .Enabled}}checked{{end}}><br>
			<label for="hold_duration">Hold duration (seconds, 0.5-10):</label>
			<input type="text" id="hold_duration" name="hold_duration" value="{{.HoldDuration}}"><br><br>
			<input type="submit" value="Save">
		</form>
	</body>
	</html>
`))

func withCORS(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		handler(w, r)
	}
}

func startServer() {
	http.HandleFunc("/", withCORS(func(w http.ResponseWriter, r *http.Request) {
		err := indexPageTemplate.Execute(w, nil)
		if err != nil {
			http.Error(w, "Error rendering template", http.StatusInternalServerError)
		}
	}))

	http.HandleFunc("/trigger", withCORS(func(w http.ResponseWriter, r *http.Request) {
		sequence.Trigger()
		fmt.Fprintf(w, "Sequence triggered")
	}))

	http.HandleFunc("/status", withCORS(func(w http.ResponseWriter, r *http.Request) {
		err := statusPageTemplate.Execute(w, map[string]interface{}{
			"State":   sequence.State().String(),
			"History": stages.historySnapshot(),
		})
		if err != nil {
			http.Error(w, "Error rendering template", http.StatusInternalServerError)
		}
	}))

	http.HandleFunc("/recipients", withCORS(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Error parsing form", http.StatusInternalServerError)
				return
			}
			name := r.FormValue("name")
			email := r.FormValue("email")
			checked := r.FormValue("checked") != ""
			if email == "" {
				http.Error(w, "Email is required", http.StatusBadRequest)
				return
			}
			if err := store.add(name, email, checked); err != nil {
				http.Error(w, fmt.Sprintf("Error saving recipient: %v", err), http.StatusInternalServerError)
				return
			}
			http.Redirect(w, r, "/recipients", http.StatusSeeOther)
			return
		}

		recipients, err := store.load()
		if err != nil {
			http.Error(w, fmt.Sprintf("Error loading recipients: %v", err), http.StatusInternalServerError)
			return
		}
		if err := recipientsPageTemplate.Execute(w, recipients); err != nil {
			http.Error(w, "Error rendering template", http.StatusInternalServerError)
		}
	}))

	http.HandleFunc("/hotkey", withCORS(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Error parsing form", http.StatusInternalServerError)
				return
			}
			if err := hotkeyCfg.setEnabled(r.FormValue("enabled") != ""); err != nil {
				http.Error(w, fmt.Sprintf("Error saving hotkey config: %v", err), http.StatusInternalServerError)
				return
			}
			if raw := r.FormValue("hold_duration"); raw != "" {
				seconds, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					http.Error(w, "Invalid hold duration", http.StatusBadRequest)
					return
				}
				if err := hotkeyCfg.setHoldDuration(seconds); err != nil {
					http.Error(w, fmt.Sprintf("%v", err), http.StatusBadRequest)
					return
				}
			}
			http.Redirect(w, r, "/hotkey", http.StatusSeeOther)
			return
		}

		err := hotkeyPageTemplate.Execute(w, map[string]interface{}{
			"Enabled":      hotkeyCfg.isEnabled(),
			"HoldDuration": hotkeyCfg.holdDuration(),
		})
		if err != nil {
			http.Error(w, "Error rendering template", http.StatusInternalServerError)
		}
	}))

	fmt.Printf("Server is starting on %s\n", config.ListenAddress)
	err := http.ListenAndServe(config.ListenAddress, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting server: %v\n", err)
	}
}
