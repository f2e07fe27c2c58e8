package dashboard

import "html/template"

// indexTemplate bootstraps a websocket connection and renders each incoming
// Snapshot as a row in a per-sub-colony progress table, adapted from the
// teacher's root_view websocket bootstrap script.
var indexTemplate = template.Must(template.New("index.html").Parse(`
<!DOCTYPE html>
<html>
<head>
	<title>sudoku acs engine</title>
	<link rel="icon" href="data:,">
	<style>
		body { font-family: monospace; background: #111; color: #ddd; }
		table { border-collapse: collapse; }
		td, th { padding: 4px 12px; border: 1px solid #444; }
		.solved { color: #4f4; font-weight: bold; }
	</style>
</head>
<body>
	<h3>sub-colony progress</h3>
	<table id="progress">
		<thead><tr><th>sub-colony</th><th>iteration</th><th>best score</th><th>cells</th><th>status</th></tr></thead>
		<tbody></tbody>
	</table>
	<script>
		const rows = {};
		const tbody = document.querySelector("#progress tbody");
		const ws = new WebSocket("ws://" + window.location.host + "/ws");

		ws.onerror = function(event) { console.log("websocket error: ", event); };

		ws.onmessage = function(event) {
			const s = JSON.parse(event.data);
			let row = rows[s.subColonyId];
			if (!row) {
				row = document.createElement("tr");
				row.innerHTML = "<td></td><td></td><td></td><td></td><td></td>";
				rows[s.subColonyId] = row;
				tbody.appendChild(row);
			}
			const cells = row.children;
			cells[0].textContent = s.subColonyId;
			cells[1].textContent = s.iteration;
			cells[2].textContent = s.bestScore;
			cells[3].textContent = s.numCells;
			cells[4].textContent = s.solved ? "solved" : "searching";
			cells[4].className = s.solved ? "solved" : "";
		};
	</script>
</body>
</html>
`))
