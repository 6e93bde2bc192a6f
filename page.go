package main

import "html/template"

type templateArgs struct {
	Room string
}

var webTemplate = template.Must(template.New("webTemplate").Parse(`
<html>
<head>
<title>chat {{.Room}}</title>
<script type="text/javascript">
window.addEventListener("load", function() {

    var room = "{{.Room}}";
    var conn;
    var msg = document.getElementById("msg");
    var name = document.getElementById("name");
    var file = document.getElementById("file");
    var log = document.getElementById("log");

    function appendLog(node) {
        var doScroll = log.scrollTop == log.scrollHeight - log.clientHeight;
        log.appendChild(node);
        if (doScroll) {
            log.scrollTop = log.scrollHeight - log.clientHeight;
        }
    }

    function notice(text) {
        var div = document.createElement("div");
        var b = document.createElement("b");
        b.textContent = text;
        div.appendChild(b);
        appendLog(div);
    }

    function appendChat(data) {
        var m = JSON.parse(data);
        var div = document.createElement("div");
        var who = document.createElement("b");
        who.textContent = (m.sender || "?") + ": ";
        div.appendChild(who);
        var body = document.createElement("span");
        // The relay escapes text before broadcasting.
        body.innerHTML = m.text || "";
        div.appendChild(body);
        if (m.image) {
            var img = document.createElement("img");
            img.src = m.image;
            img.className = "chat-image";
            div.appendChild(img);
        }
        appendLog(div);
    }

    function sendChat(payload) {
        if (!conn) {
            return;
        }
        payload.sender = name.value || "anon";
        conn.send(JSON.stringify({type: "chat", payload: payload}));
    }

    document.getElementById("form").addEventListener("submit", function(ev) {
        ev.preventDefault();
        if (!msg.value) {
            return;
        }
        sendChat({text: msg.value});
        msg.value = "";
    });

    file.addEventListener("change", function() {
        if (!file.files.length) {
            return;
        }
        var data = new FormData();
        data.append("image", file.files[0]);
        fetch("/upload", {method: "POST", body: data}).then(function(res) {
            if (!res.ok) {
                notice("Upload failed.");
                return null;
            }
            return res.json();
        }).then(function(body) {
            if (body) {
                sendChat({text: "", image: body.url});
            }
            file.value = "";
        });
    });

    if (window["WebSocket"]) {
        var scheme = location.protocol == "https:" ? "wss://" : "ws://";
        conn = new WebSocket(scheme + location.host + "/");
        conn.onopen = function(evt) {
            conn.send(JSON.stringify({type: "join", room: room}));
        }
        conn.onclose = function(evt) {
            notice("Connection closed.");
        }
        conn.onmessage = function(evt) {
            appendChat(evt.data);
        }
        msg.focus();
    } else {
        notice("Your browser does not support WebSockets.");
    }
});
</script>
<style type="text/css">
html {
    overflow: hidden;
}

body {
    overflow: hidden;
    padding: 0.5em;
    margin: 0;
    width: 100%;
    height: 100%;
    background: gray;
}

#log {
    background: white;
    margin: 0;
    padding: 0.5em 0.5em 0.5em 0.5em;
    position: absolute;
    top: 2.0em;
    left: 0.5em;
    right: 0.5em;
    bottom: 3em;
    overflow: auto;
}

#form {
    padding: 0 0.5em 0 0.5em;
    margin: 0;
    position: absolute;
    bottom: 0.5em;
    left: 0px;
    width: 100%;
    overflow: hidden;
}

.chat-image {
    display: block;
    max-width: 320px;
    max-height: 240px;
}
</style>
</head>
<body>
<h3>Chat room {{.Room}}</h3>
<div id="log"></div>
<form id="form">
    <input type="text" id="name" size="12" placeholder="name" />
    <input type="text" id="msg" size="48" placeholder="message" />
    <input type="submit" value="Send" />
    <input type="file" id="file" accept="image/*" />
</form>
</body>
</html>
`))
