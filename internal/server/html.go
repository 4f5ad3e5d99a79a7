package server

const playerHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{title}} · subflow</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body { background: #1a1a2e; color: #e0e0e0; font-family: system-ui, sans-serif; }
  .container { max-width: 960px; margin: 0 auto; padding: 20px; }
  h1 { font-size: 1.4rem; margin-bottom: 16px; color: #a0c4ff; }
  video {
    width: 100%; border-radius: 8px;
    background: #000; box-shadow: 0 4px 20px rgba(0,0,0,0.5);
  }
  video::cue { font-size: 1.1rem; background: rgba(0,0,0,0.7); }
  .controls { margin-top: 12px; display: flex; gap: 8px; flex-wrap: wrap; }
  .controls label {
    padding: 6px 14px; border-radius: 6px; cursor: pointer;
    background: #16213e; border: 1px solid #334;
    font-size: 0.85rem; transition: all 0.2s;
  }
  .controls label:hover { background: #1a1a4e; }
  .controls input:checked + span { color: #a0c4ff; font-weight: 600; }
  .controls input { display: none; }
  .info { margin-top: 16px; font-size: 0.8rem; color: #888; }
</style>
</head>
<body>
<div class="container">
  <h1>{{title}}</h1>
  <video id="player" controls autoplay>
    <source src="/files/{{video}}" type="{{mime}}">
{{tracks}}  </video>
  <div class="controls" id="track-controls"></div>
  <div class="info">
    Served by <strong>subflow serve</strong> &mdash; press Ctrl+C to stop
  </div>
</div>
<script>
  const video = document.getElementById('player');
  const controls = document.getElementById('track-controls');
  const tracks = video.textTracks;

  for (let i = 0; i < tracks.length; i++) {
    const t = tracks[i];
    const id = 'track-' + i;
    const label = document.createElement('label');
    label.innerHTML = '<input type="checkbox" id="' + id + '" checked><span>' + t.label + '</span>';
    label.querySelector('input').addEventListener('change', (e) => {
      t.mode = e.target.checked ? 'showing' : 'hidden';
    });
    controls.appendChild(label);
    t.mode = 'showing';
  }
</script>
</body>
</html>
`
