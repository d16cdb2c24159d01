package annot

// Browser support sets shared by several table entries.
var (
	allButIE9Annotations = []string{
		"@SupportedBrowser(SupportedBrowser.CHROME)",
		"@SupportedBrowser(SupportedBrowser.FIREFOX)",
		"@SupportedBrowser(SupportedBrowser.IE, '10')",
		"@SupportedBrowser(SupportedBrowser.SAFARI)",
	}
	fileSystemAnnotations = []string{
		"@SupportedBrowser(SupportedBrowser.CHROME)",
		"@Experimental",
	}
	indexedDBAnnotations = []string{
		"@SupportedBrowser(SupportedBrowser.CHROME)",
		"@SupportedBrowser(SupportedBrowser.FIREFOX, '15')",
		"@SupportedBrowser(SupportedBrowser.IE, '10')",
		"@Experimental",
	}
	noIEAnnotations = []string{
		"@SupportedBrowser(SupportedBrowser.CHROME)",
		"@SupportedBrowser(SupportedBrowser.FIREFOX)",
		"@SupportedBrowser(SupportedBrowser.SAFARI)",
	}
	performanceAnnotations = []string{
		"@SupportedBrowser(SupportedBrowser.CHROME)",
		"@SupportedBrowser(SupportedBrowser.FIREFOX)",
		"@SupportedBrowser(SupportedBrowser.IE)",
	}
	rtcAnnotations = []string{
		"@SupportedBrowser(SupportedBrowser.CHROME)",
		"@Experimental",
	}
	shadowDOMAnnotations = []string{
		"@SupportedBrowser(SupportedBrowser.CHROME, '26')",
		"@Experimental",
	}
	speechRecognitionAnnotations = []string{
		"@SupportedBrowser(SupportedBrowser.CHROME, '25')",
		"@Experimental",
	}
	webSQLAnnotations = []string{
		"@SupportedBrowser(SupportedBrowser.CHROME)",
		"@SupportedBrowser(SupportedBrowser.SAFARI)",
		"@Experimental",
	}
	webGLAnnotations = []string{
		"@SupportedBrowser(SupportedBrowser.CHROME)",
		"@SupportedBrowser(SupportedBrowser.FIREFOX)",
		"@Experimental",
	}
	webkitExperimentalAnnotations = []string{
		"@SupportedBrowser(SupportedBrowser.CHROME)",
		"@SupportedBrowser(SupportedBrowser.SAFARI)",
		"@Experimental",
	}
	historyAnnotations = allButIE9Annotations
	svgAnnotations     = allButIE9Annotations
)

// DefaultAnnotations returns the annotations shared by every backend, keyed
// by "Interface" or "Interface.member".
func DefaultAnnotations() *Annotations {
	return NewAnnotations(map[string][]string{
		"ArrayBuffer":     allButIE9Annotations,
		"ArrayBufferView": allButIE9Annotations,
		"CSSHostRule":     shadowDOMAnnotations,
		"Crypto":          webkitExperimentalAnnotations,
		"Database":        webSQLAnnotations,
		"DatabaseSync":    webSQLAnnotations,
		"DOMApplicationCache": {
			"@SupportedBrowser(SupportedBrowser.CHROME)",
			"@SupportedBrowser(SupportedBrowser.FIREFOX)",
			"@SupportedBrowser(SupportedBrowser.IE, '10')",
			"@SupportedBrowser(SupportedBrowser.OPERA)",
			"@SupportedBrowser(SupportedBrowser.SAFARI)",
		},
		"DOMFileSystem":     fileSystemAnnotations,
		"DOMFileSystemSync": fileSystemAnnotations,
		"DOMWindow.webkitConvertPointFromNodeToPage": webkitExperimentalAnnotations,
		"DOMWindow.webkitConvertPointFromPageToNode": webkitExperimentalAnnotations,
		"DOMWindow.indexedDB":                        indexedDBAnnotations,
		"DOMWindow.openDatabase":                     webSQLAnnotations,
		"DOMWindow.performance":                      performanceAnnotations,
		"DOMWindow.webkitNotifications":              webkitExperimentalAnnotations,
		"DOMWindow.webkitRequestFileSystem":          fileSystemAnnotations,
		"DOMWindow.webkitResolveLocalFileSystemURL":  fileSystemAnnotations,
		"Element.onwebkitTransitionEnd":              allButIE9Annotations,
		"Element.webkitMatchesSelector":              {"@Experimental()"},
		"Element.webkitCreateShadowRoot": {
			"@SupportedBrowser(SupportedBrowser.CHROME, '25')",
			"@Experimental",
		},
		"Event.clipboardData": webkitExperimentalAnnotations,
		"FormData":            allButIE9Annotations,
		"HashChangeEvent": {
			"@SupportedBrowser(SupportedBrowser.CHROME)",
			"@SupportedBrowser(SupportedBrowser.FIREFOX)",
			"@SupportedBrowser(SupportedBrowser.SAFARI)",
		},
		"History.pushState":    historyAnnotations,
		"History.replaceState": historyAnnotations,
		"HTMLContentElement":   shadowDOMAnnotations,
		"HTMLDataListElement":  allButIE9Annotations,
		"HTMLDetailsElement":   webkitExperimentalAnnotations,
		"HTMLEmbedElement": {
			"@SupportedBrowser(SupportedBrowser.CHROME)",
			"@SupportedBrowser(SupportedBrowser.IE)",
			"@SupportedBrowser(SupportedBrowser.SAFARI)",
		},
		"HTMLKeygenElement": webkitExperimentalAnnotations,
		"HTMLMeterElement":  noIEAnnotations,
		"HTMLObjectElement": {
			"@SupportedBrowser(SupportedBrowser.CHROME)",
			"@SupportedBrowser(SupportedBrowser.IE)",
			"@SupportedBrowser(SupportedBrowser.SAFARI)",
		},
		"HTMLOutputElement":   noIEAnnotations,
		"HTMLProgressElement": allButIE9Annotations,
		"HTMLShadowElement":   shadowDOMAnnotations,
		"HTMLTrackElement": {
			"@SupportedBrowser(SupportedBrowser.CHROME)",
			"@SupportedBrowser(SupportedBrowser.IE, '10')",
			"@SupportedBrowser(SupportedBrowser.SAFARI)",
		},
		"IDBFactory":            indexedDBAnnotations,
		"IDBDatabase":           indexedDBAnnotations,
		"LocalMediaStream":      rtcAnnotations,
		"MediaStream":           rtcAnnotations,
		"MediaStreamEvent":      rtcAnnotations,
		"MediaStreamTrack":      rtcAnnotations,
		"MediaStreamTrackEvent": rtcAnnotations,
		"MutationObserver": {
			"@SupportedBrowser(SupportedBrowser.CHROME)",
			"@SupportedBrowser(SupportedBrowser.FIREFOX)",
			"@SupportedBrowser(SupportedBrowser.SAFARI)",
			"@Experimental",
		},
		"NotificationCenter":            webkitExperimentalAnnotations,
		"Performance":                   performanceAnnotations,
		"PopStateEvent":                 historyAnnotations,
		"RTCIceCandidate":               rtcAnnotations,
		"RTCPeerConnection":             rtcAnnotations,
		"RTCSessionDescription":         rtcAnnotations,
		"ShadowRoot":                    shadowDOMAnnotations,
		"SpeechRecognition":             speechRecognitionAnnotations,
		"SpeechRecognitionAlternative":  speechRecognitionAnnotations,
		"SpeechRecognitionError":        speechRecognitionAnnotations,
		"SpeechRecognitionEvent":        speechRecognitionAnnotations,
		"SpeechRecognitionResult":       speechRecognitionAnnotations,
		"SVGAltGlyphElement":            noIEAnnotations,
		"SVGAnimateElement":             noIEAnnotations,
		"SVGAnimateMotionElement":       noIEAnnotations,
		"SVGAnimateTransformElement":    noIEAnnotations,
		"SVGFEBlendElement":             svgAnnotations,
		"SVGFEColorMatrixElement":       svgAnnotations,
		"SVGFEComponentTransferElement": svgAnnotations,
		"SVGFEConvolveMatrixElement":    svgAnnotations,
		"SVGFEDiffuseLightingElement":   svgAnnotations,
		"SVGFEDisplacementMapElement":   svgAnnotations,
		"SVGFEDistantLightElement":      svgAnnotations,
		"SVGFEFloodElement":             svgAnnotations,
		"SVGFEFuncAElement":             svgAnnotations,
		"SVGFEFuncBElement":             svgAnnotations,
		"SVGFEFuncGElement":             svgAnnotations,
		"SVGFEFuncRElement":             svgAnnotations,
		"SVGFEGaussianBlurElement":      svgAnnotations,
		"SVGFEImageElement":             svgAnnotations,
		"SVGFEMergeElement":             svgAnnotations,
		"SVGFEMergeNodeElement":         svgAnnotations,
		"SVGFEMorphologyElement":        svgAnnotations,
		"SVGFEOffsetElement":            svgAnnotations,
		"SVGFEPointLightElement":        svgAnnotations,
		"SVGFESpecularLightingElement":  svgAnnotations,
		"SVGFESpotLightElement":         svgAnnotations,
		"SVGFETileElement":              svgAnnotations,
		"SVGFETurbulenceElement":        svgAnnotations,
		"SVGFilterElement":              svgAnnotations,
		"SVGForeignObjectElement":       noIEAnnotations,
		"SVGSetElement":                 noIEAnnotations,
		"SQLTransaction":                webSQLAnnotations,
		"SQLTransactionSync":            webSQLAnnotations,
		"WebGLRenderingContext":         webGLAnnotations,
		"WebKitCSSMatrix":               webkitExperimentalAnnotations,
		"WebKitPoint":                   webkitExperimentalAnnotations,
		"WebSocket":                     allButIE9Annotations,
		"Worker":                        allButIE9Annotations,
		"XMLHttpRequest.onloadend":      allButIE9Annotations,
		"XMLHttpRequest.onprogress":     allButIE9Annotations,
		"XMLHttpRequest.response":       allButIE9Annotations,
		"XMLHttpRequestProgressEvent":   webkitExperimentalAnnotations,
		"XSLTProcessor": {
			"@SupportedBrowser(SupportedBrowser.CHROME)",
			"@SupportedBrowser(SupportedBrowser.FIREFOX)",
			"@SupportedBrowser(SupportedBrowser.SAFARI)",
		},
	})
}

// DefaultNativeAnnotations returns the compiled-backend annotations. Keys are
// "Interface.member", or a type name optionally prefixed with + (only with
// member annotations) or - (only without).
func DefaultNativeAnnotations() *Annotations {
	return NewAnnotations(map[string][]string{
		"ArrayBuffer": {
			"@Creates('ArrayBuffer')",
			"@Returns('ArrayBuffer|Null')",
		},
		"ArrayBufferView": {
			"@Creates('ArrayBufferView')",
			"@Returns('ArrayBufferView|Null')",
		},
		"CanvasRenderingContext2D.createImageData":      {"@Creates('ImageData|=Object')"},
		"CanvasRenderingContext2D.getImageData":         {"@Creates('ImageData|=Object')"},
		"CanvasRenderingContext2D.webkitGetImageDataHD": {"@Creates('ImageData|=Object')"},
		"CanvasRenderingContext2D.fillStyle": {
			"@Creates('String|CanvasGradient|CanvasPattern')",
			"@Returns('String|CanvasGradient|CanvasPattern')",
		},
		"CanvasRenderingContext2D.strokeStyle": {
			"@Creates('String|CanvasGradient|CanvasPattern')",
			"@Returns('String|CanvasGradient|CanvasPattern')",
		},
		"DOMWindow": {
			"@Creates('Window|=Object')",
			"@Returns('Window|=Object')",
		},
		"DOMWindow.openDatabase": {"@Creates('SqlDatabase')"},
		"Event.currentTarget": {
			"@Creates('Null')",
			"@Returns('EventTarget|=Object')",
		},
		"Event.target": {
			"@Creates('Node')",
			"@Returns('EventTarget|=Object')",
		},
		"MouseEvent.relatedTarget": {
			"@Creates('Node')",
			"@Returns('EventTarget|=Object')",
		},
		"Touch.target": {
			"@Creates('Element|Document')",
			"@Returns('Element|Document')",
		},
		"FileReader.result":                 {"@Creates('String|ArrayBuffer|Null')"},
		"IDBRequest.result":                 {"@Creates('Null')"},
		"IDBRequest.source":                 {"@Creates('Null')"},
		"IDBFactory.open":                   {"@Creates('Database')"},
		"IDBFactory.webkitGetDatabaseNames": {"@Creates('DomStringList')"},
		"IDBObjectStore.put":                {"@_annotation_Creates_IDBKey"},
		"IDBObjectStore.add":                {"@_annotation_Creates_IDBKey"},
		"IDBObjectStore.get":                {"@annotation_Creates_SerializedScriptValue"},
		"IDBObjectStore.openCursor":         {"@Creates('Cursor')"},
		"IDBIndex.get":                      {"@annotation_Creates_SerializedScriptValue"},
		"IDBIndex.getKey": {
			"@annotation_Creates_SerializedScriptValue",
			"@Creates('ObjectStore')",
		},
		"IDBIndex.openCursor":    {"@Creates('Cursor')"},
		"IDBIndex.openKeyCursor": {"@Creates('Cursor')"},
		"IDBCursorWithValue.value": {
			"@annotation_Creates_SerializedScriptValue",
			"@annotation_Returns_SerializedScriptValue",
		},
		"IDBCursor.key": {
			"@_annotation_Creates_IDBKey",
			"@_annotation_Returns_IDBKey",
		},
		"+IDBRequest": {
			"@Returns('Request')",
			"@Creates('Request')",
		},
		"+IDBOpenDBRequest": {
			"@Returns('Request')",
			"@Creates('Request')",
		},
		"MessageEvent.ports": {"@Creates('=List')"},
		"MessageEvent.data": {
			"@annotation_Creates_SerializedScriptValue",
			"@annotation_Returns_SerializedScriptValue",
		},
		"PopStateEvent.state": {
			"@annotation_Creates_SerializedScriptValue",
			"@annotation_Returns_SerializedScriptValue",
		},
		"SerializedScriptValue": {
			"@annotation_Creates_SerializedScriptValue",
			"@annotation_Returns_SerializedScriptValue",
		},
		"SQLResultSetRowList.item": {"@Creates('=Object')"},
		"WebGLRenderingContext.getParameter": {
			"@Creates('Null|num|String|bool|=List|Float32Array|Int32Array|Uint32Array|Framebuffer|Renderbuffer|Texture')",
			"@Returns('Null|num|String|bool|=List|Float32Array|Int32Array|Uint32Array|Framebuffer|Renderbuffer|Texture')",
		},
		"XMLHttpRequest.response": {
			"@Creates('ArrayBuffer|Blob|Document|=Object|=List|String|num')",
		},
	})
}
