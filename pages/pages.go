package pages

var Index = `
<!DOCTYPE html>
<html>
<head>
    <title>yogabeats</title>
    <meta charset="utf-8">
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            max-width: 800px;
            margin: 0 auto;
            padding: 20px;
        }
        label {
            display: block;
            margin-top: 12px;
        }
        input, select, textarea {
            width: 100%;
            padding: 6px;
        }
        pre {
            white-space: pre-wrap;
            word-wrap: break-word;
            background: #f6f6f6;
            padding: 12px;
        }
        .muted {
            color: #777;
        }
    </style>
</head>
<body>
    <h1>yogabeats</h1>
    <p class="muted">Generate a class playlist, match it on Spotify, and export it.</p>

    <form id="generate">
        <label>Class
            <select id="class_name"></select>
        </label>
        <label>Music preferences
            <input id="music_preferences" placeholder="e.g. downtempo electronic">
        </label>
        <label>Duration (minutes)
            <input id="duration" type="number" min="1" max="300" value="60">
        </label>
        <p><button type="submit">Generate playlist</button></p>
    </form>

    <pre id="playlist" hidden></pre>
    <p id="summary" class="muted"></p>

    <section id="export" hidden>
        <h2>Export to Spotify</h2>
        <p><a href="/api/spotify/login">Log in with Spotify</a> and paste the access token below.</p>
        <label>Access token
            <input id="token">
        </label>
        <label>Playlist name
            <input id="playlist_name">
        </label>
        <p><button id="create">Create playlist</button></p>
        <p id="result"></p>
    </section>

    <script>
        let trackIDs = [];

        async function api(path, options) {
            const response = await fetch(path, options);
            const body = await response.json();
            if (!body.success) {
                throw new Error(body.error || response.statusText);
            }
            return body;
        }

        async function loadClasses() {
            const body = await api('/api/classes');
            const select = document.getElementById('class_name');
            for (const c of body.classes) {
                const option = document.createElement('option');
                option.value = c.name;
                option.textContent = c.name;
                select.appendChild(option);
            }
        }

        document.getElementById('generate').addEventListener('submit', async (event) => {
            event.preventDefault();
            const className = document.getElementById('class_name').value;
            const summary = document.getElementById('summary');
            summary.textContent = 'Generating...';
            try {
                const body = await api('/api/generate-playlist', {
                    method: 'POST',
                    headers: {'Content-Type': 'application/json'},
                    body: JSON.stringify({
                        class_name: className,
                        music_preferences: document.getElementById('music_preferences').value,
                        duration: parseInt(document.getElementById('duration').value, 10),
                    }),
                });
                const found = body.spotify_integration;
                trackIDs = found.track_ids;
                document.getElementById('playlist').textContent = body.playlist;
                document.getElementById('playlist').hidden = false;
                summary.textContent = found.found_count + ' of ' + found.total_candidates + ' tracks found on Spotify' +
                    (body.source === 'fallback' ? ' (fallback playlist)' : '');
                document.getElementById('playlist_name').value = className + ' Playlist';
                document.getElementById('export').hidden = !body.ready_for_export;
            } catch (err) {
                summary.textContent = err.message;
            }
        });

        document.getElementById('create').addEventListener('click', async () => {
            const result = document.getElementById('result');
            try {
                const body = await api('/api/create-spotify-playlist', {
                    method: 'POST',
                    headers: {
                        'Content-Type': 'application/json',
                        'Authorization': 'Bearer ' + document.getElementById('token').value,
                    },
                    body: JSON.stringify({
                        playlist_name: document.getElementById('playlist_name').value,
                        track_ids: trackIDs,
                    }),
                });
                result.innerHTML = '<a href="' + body.playlist_url + '">Open playlist</a> (' + body.track_count + ' tracks)';
            } catch (err) {
                result.textContent = err.message;
            }
        });

        loadClasses();
    </script>
</body>
</html>`
