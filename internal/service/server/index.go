package server

// indexHTML is the single-page UI. It drives the JSON API with a
// one-second polling loop while a job is running.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Steam Game Downloader</title>
    <style>
        body { font-family: sans-serif; max-width: 720px; margin: 40px auto; padding: 0 16px; color: #333; }
        h2 { border-bottom: 1px solid #ddd; padding-bottom: 6px; }
        label { display: block; margin-top: 12px; }
        input[type=text], input[type=password] { width: 100%; padding: 6px; box-sizing: border-box; }
        button { margin-top: 12px; padding: 8px 16px; cursor: pointer; }
        #progress-bar { width: 100%; background: #eee; height: 20px; border-radius: 4px; overflow: hidden; }
        #progress-fill { background: #4a90d9; height: 100%; width: 0; transition: width 0.5s; }
        #error { color: #b00020; white-space: pre-wrap; }
        #location a { color: #0066cc; }
        .hidden { display: none; }
    </style>
</head>
<body>
    <h1>Steam Game Downloader</h1>

    <h2>System Status</h2>
    <p id="status-text">Checking SteamCMD...</p>
    <button id="install-btn" class="hidden">Install SteamCMD</button>

    <h2>Login</h2>
    <label>Username <input type="text" id="username" placeholder="Steam username (or leave empty for anonymous)"></label>
    <label>Password <input type="password" id="password" placeholder="Steam password"></label>
    <label><input type="checkbox" id="anonymous" checked> Login Anonymously (for free games)</label>

    <h2>Game Download</h2>
    <label>Game ID or Steam URL <input type="text" id="game-input" placeholder="e.g., 570 or https://store.steampowered.com/app/570/"></label>
    <button id="download-btn">Start Download</button>

    <h2>Download Progress</h2>
    <div id="progress-bar"><div id="progress-fill"></div></div>
    <p id="progress-info"></p>
    <p id="location" class="hidden"></p>
    <p id="error" class="hidden"></p>

    <script>
    let pollTimer = null;

    function el(id) { return document.getElementById(id); }

    function showError(msg) {
        el('error').textContent = msg;
        el('error').classList.remove('hidden');
        el('progress-info').textContent = 'Error occurred.';
    }

    function clearError() {
        el('error').textContent = '';
        el('error').classList.add('hidden');
    }

    async function refreshStatus() {
        const resp = await fetch('/api/status');
        const status = await resp.json();
        if (status.installed) {
            el('status-text').textContent = 'SteamCMD Ready';
            el('install-btn').classList.add('hidden');
        } else {
            el('status-text').textContent = 'SteamCMD Missing';
            el('install-btn').classList.remove('hidden');
        }
    }

    el('install-btn').addEventListener('click', async () => {
        el('status-text').textContent = 'Installing...';
        const resp = await fetch('/api/install', { method: 'POST' });
        if (resp.ok) {
            el('status-text').textContent = 'SteamCMD Installed';
            el('install-btn').classList.add('hidden');
        } else {
            el('status-text').textContent = 'Installation Failed';
        }
    });

    el('download-btn').addEventListener('click', async () => {
        clearError();
        el('location').classList.add('hidden');
        el('progress-info').textContent = 'Initializing...';

        const body = {
            app: el('game-input').value,
            username: el('username').value,
            password: el('password').value,
            anonymous: el('anonymous').checked
        };

        const resp = await fetch('/api/download', {
            method: 'POST',
            headers: { 'Content-Type': 'application/json' },
            body: JSON.stringify(body)
        });
        const result = await resp.json();
        if (!resp.ok) {
            showError(result.error || 'Request failed');
            return;
        }

        if (pollTimer) clearInterval(pollTimer);
        pollTimer = setInterval(() => pollJob(result.id), 1000);
    });

    async function pollJob(id) {
        const resp = await fetch('/api/jobs/' + id);
        if (!resp.ok) return;
        const job = await resp.json();

        el('progress-info').textContent = job.status_line;
        if (job.progress) {
            el('progress-fill').style.width = job.progress.percentage + '%';
        }

        if (job.status === 'complete') {
            clearInterval(pollTimer);
            pollTimer = null;
            el('progress-fill').style.width = '100%';
            const loc = el('location');
            loc.classList.remove('hidden');
            if (job.location && job.location.startsWith('http')) {
                loc.innerHTML = 'Game files downloaded. <a href="' + job.location + '">Browse files</a>';
            } else {
                loc.textContent = 'Game files downloaded to server directory: ' + (job.location || '');
            }
        } else if (job.status === 'failed') {
            clearInterval(pollTimer);
            pollTimer = null;
            showError(job.error || 'Download failed');
        }
    }

    refreshStatus();
    </script>
</body>
</html>
`
