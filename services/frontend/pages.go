package frontend

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>Task Tracker</title>
<link rel="stylesheet" href="/static/styles.css"/>
</head>
<body>
<div class="container">
<h1>Task Tracker</h1>
<div class="task-form">
<select id="eventType">
<option value="birthday">Birthday</option>
<option value="meeting">Meeting</option>
<option value="call">Call</option>
<option value="other">Other</option>
</select>
<input id="taskInput" type="text" placeholder="Enter a task"/>
<input id="taskDate" type="date"/>
<input id="taskTime" type="time"/>
<button id="addTask">Add</button>
</div>
<div id="taskListContainer"><ul id="taskList"></ul></div>
<div id="calendarContainer"><div id="calendar"></div></div>
</div>
<script src="/static/app.js"></script>
</body>
</html>
`

// IndexPage is the tracker page shell. The task list and calendar inside it
// are fragments fetched from /ui/tasks and /ui/calendar after load.
func IndexPage() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, indexHTML)
		return err
	})
}
