package live

// clientScript connects to /ws, swaps the root on each render and reports
// click, input and change events on elements carrying a data-on-* marker.
const clientScript = `(function () {
  var root = document.getElementById("rxview-root");
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  ws.onmessage = function (e) {
    var msg = JSON.parse(e.data);
    if (msg.type === "render") {
      root.innerHTML = msg.html;
    } else if (msg.type === "error") {
      console.error("rxview:", msg.error);
    }
  };
  ["click", "input", "change"].forEach(function (name) {
    root.addEventListener(name, function (e) {
      var el = e.target.closest("[data-on-" + name + "]");
      if (!el || ws.readyState !== WebSocket.OPEN) {
        return;
      }
      var value = name === "click" ? null : e.target.value;
      ws.send(JSON.stringify({ hid: el.dataset.hid, event: name, value: value }));
    });
  });
})();`
