package web

import "html/template"

// pageData is passed to indexTemplate.
type pageData struct {
	Title           string
	AnalyzePath     string
	ContentAnalysis bool
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        :root { --bg: #121212; --card: #1e1e1e; --text: #e0e0e0; --accent: #4ea8de; --error: #ff4444; }
        body { background: var(--bg); color: var(--text); font-family: system-ui, sans-serif; margin: 0; padding: 2rem; }
        .container { background: var(--card); padding: 2rem; border-radius: 12px; max-width: 860px; margin: 0 auto; }
        h1 { margin: 0 0 1rem; font-size: 1.5rem; color: var(--accent); }
        input[type=url] { width: 100%; padding: 12px; margin: 10px 0; border: 1px solid #333; border-radius: 6px; background: #252525; color: #fff; box-sizing: border-box; }
        label { display: block; margin: 0.5rem 0 1rem; }
        button { padding: 12px 24px; border: none; border-radius: 6px; background: var(--accent); color: #fff; font-weight: bold; cursor: pointer; }
        button:disabled { background: #555; cursor: not-allowed; }
        #loadingSpinner { display: none; width: 18px; height: 18px; margin-left: 12px; vertical-align: middle; border: 3px solid #333; border-top-color: var(--accent); border-radius: 50%; animation: spin 1s linear infinite; }
        @keyframes spin { to { transform: rotate(360deg); } }
        #errorMessage { color: var(--error); margin-top: 1rem; white-space: pre-wrap; }
        #reportContent { margin-top: 1rem; background: #252525; padding: 1rem; border-radius: 6px; overflow-x: auto; }
        #reportContent:empty { display: none; }
    </style>
</head>
<body>
    <div class="container">
        <h1>{{.Title}}</h1>
        <form id="analysisForm">
            <input type="url" id="videoUrl" placeholder="Paste a video URL...">
            <label><input type="checkbox" id="contentAnalysis"{{if .ContentAnalysis}} checked{{end}}> Analyze video content</label>
            <button type="submit" id="analyzeButton">Analyze</button>
            <span id="loadingSpinner"></span>
        </form>
        <div id="errorMessage"></div>
        <pre id="reportContent"></pre>
    </div>

    <script>
        const analyzePath = {{.AnalyzePath}};
        const analysisForm = document.getElementById('analysisForm');
        const videoUrl = document.getElementById('videoUrl');
        const contentAnalysis = document.getElementById('contentAnalysis');
        const analyzeButton = document.getElementById('analyzeButton');
        const loadingSpinner = document.getElementById('loadingSpinner');
        const errorMessage = document.getElementById('errorMessage');
        const reportContent = document.getElementById('reportContent');

        const setBusy = (busy) => {
            videoUrl.disabled = busy;
            contentAnalysis.disabled = busy;
            analyzeButton.disabled = busy;
            loadingSpinner.style.display = busy ? 'inline-block' : 'none';
        };

        const displayError = (err) => {
            if (err && err.message) {
                return 'Error: ' + err.message;
            }
            if (typeof err === 'object' && err !== null) {
                return 'Error: ' + JSON.stringify(err, null, 2);
            }
            return 'Error: ' + String(err);
        };

        analysisForm.addEventListener('submit', async (event) => {
            event.preventDefault();

            errorMessage.textContent = '';
            reportContent.textContent = '';

            const url = videoUrl.value;
            const content_analysis = contentAnalysis.checked;

            if (!url) {
                errorMessage.textContent = 'Please enter a video URL.';
                return;
            }

            setBusy(true);
            try {
                const response = await fetch(analyzePath, {
                    method: 'POST',
                    headers: { 'Content-Type': 'application/json' },
                    body: JSON.stringify({ url, content_analysis }),
                });

                if (!response.ok) {
                    const errorData = await response.json();
                    let detail = errorData && errorData.detail;
                    if (detail && typeof detail !== 'string') {
                        detail = JSON.stringify(detail);
                    }
                    throw new Error(detail || 'Analysis failed.');
                }

                const report = await response.json();
                reportContent.textContent = JSON.stringify(report, null, 2);
            } catch (err) {
                console.error('Error:', err);
                errorMessage.textContent = displayError(err);
            } finally {
                setBusy(false);
            }
        });
    </script>
</body>
</html>
`))
