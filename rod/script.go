package rod

// snapshotJS serializes the page into the JSON form of llmfeeder.Snapshot.
// Frames whose document is script-accessible carry their body HTML.
const snapshotJS = `() => {
	let selection = "";
	const sel = window.getSelection();
	if (sel && sel.rangeCount > 0 && !sel.isCollapsed) {
		const div = document.createElement("div");
		for (let i = 0; i < sel.rangeCount; i++) {
			div.appendChild(sel.getRangeAt(i).cloneContents());
		}
		selection = div.innerHTML;
	}

	const frames = Array.from(document.querySelectorAll("iframe")).map((el, index) => {
		const frame = {
			index: index,
			src: el.src || "",
			srcdoc: el.getAttribute("srcdoc") || "",
			title: el.title || "",
			ariaLabel: el.getAttribute("aria-label") || "",
			hidden: el.offsetParent === null,
			sameOrigin: false,
			body: ""
		};
		try {
			const doc = el.contentDocument || (el.contentWindow && el.contentWindow.document);
			if (doc && doc.body) {
				frame.sameOrigin = true;
				frame.body = doc.body.innerHTML;
			}
		} catch (e) {}
		return frame;
	});

	return JSON.stringify({
		url: location.href,
		baseUrl: document.baseURI,
		title: document.title,
		html: document.documentElement.outerHTML,
		selection: selection,
		frames: frames
	});
}`

// frameBodyJS returns the body HTML of the document it runs in.
const frameBodyJS = `() => document.body ? document.body.innerHTML : ""`
