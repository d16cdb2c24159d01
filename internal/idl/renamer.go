package idl

import "strings"

// Renamer maps raw IDL identifiers to exposed target-language identifiers.
type Renamer interface {
	RenameInterface(iface *Interface) string
	DartifyTypeName(name string) string
}

// DefaultInterfaceRenames is the interface rename table of the reference
// renamer.
var DefaultInterfaceRenames = map[string]string{
	"CDATASection":                "CDataSection",
	"DOMApplicationCache":         "ApplicationCache",
	"DOMCoreException":            "DomException",
	"DOMFileSystem":               "FileSystem",
	"DOMFileSystemSync":           "_FileSystemSync",
	"DOMFormData":                 "FormData",
	"DOMURL":                      "Url",
	"DOMWindow":                   "Window",
	"History":                     "History",
	"HTMLDocument":                "HtmlDocument",
	"IDBAny":                      "_Any",
	"NamedNodeMap":                "_NamedNodeMap",
	"NavigatorUserMediaError":     "NavigatorUserMediaError",
	"Rect":                        "CssRect",
	"RGBColor":                    "CssRgbColor",
	"WebGLVertexArrayObjectOES":   "VertexArrayObject",
	"WebKitAnimationEvent":        "AnimationEvent",
	"WebKitCSSKeyframeRule":       "CssKeyframeRule",
	"WebKitCSSKeyframesRule":      "CssKeyframesRule",
	"WebKitCSSMatrix":             "CssMatrix",
	"WebKitCSSTransformValue":     "CssTransformValue",
	"WebKitPoint":                 "DomPoint",
	"WebKitTransitionEvent":       "TransitionEvent",
	"XMLHttpRequest":              "HttpRequest",
	"XMLHttpRequestException":     "HttpRequestException",
	"XMLHttpRequestProgressEvent": "HttpRequestProgressEvent",
	"XMLHttpRequestUpload":        "HttpRequestUpload",
}

// DefaultRenamedMembers lists "Interface.member" keys whose vendor-prefixed
// names are renamed away, so they do not count as experimental.
var DefaultRenamedMembers = map[string]string{
	"Document.webkitCancelFullScreen":            "cancelFullScreen",
	"Document.webkitExitFullscreen":              "exitFullscreen",
	"Document.webkitExitPointerLock":             "exitPointerLock",
	"Document.webkitFullscreenElement":           "fullscreenElement",
	"Document.webkitFullscreenEnabled":           "fullscreenEnabled",
	"Document.webkitHidden":                      "hidden",
	"Document.webkitIsFullScreen":                "isFullScreen",
	"Document.webkitPointerLockElement":          "pointerLockElement",
	"Document.webkitVisibilityState":             "visibilityState",
	"DOMWindow.webkitConvertPointFromNodeToPage": "convertPointFromNodeToPage",
	"DOMWindow.webkitConvertPointFromPageToNode": "convertPointFromPageToNode",
	"DOMWindow.webkitNotifications":              "notifications",
	"DOMWindow.webkitRequestFileSystem":          "requestFileSystem",
	"DOMWindow.webkitResolveLocalFileSystemURL":  "resolveLocalFileSystemUrl",
	"Element.webkitCreateShadowRoot":             "createShadowRoot",
	"Element.webkitMatchesSelector":              "matches",
	"Navigator.webkitGetUserMedia":               "getUserMedia",
}

// typePrefixes are stripped by DartifyTypeName when no rename applies.
var typePrefixes = []string{"SVG", "WebKit"}

// DefaultRenamer is the table-driven reference Renamer.
type DefaultRenamer struct {
	Interfaces map[string]string
	Members    map[string]string
}

// NewDefaultRenamer builds a renamer over the default tables.
func NewDefaultRenamer() *DefaultRenamer {
	return &DefaultRenamer{
		Interfaces: DefaultInterfaceRenames,
		Members:    DefaultRenamedMembers,
	}
}

// RenameInterface honours an explicit [DartName] before the rename table.
func (r *DefaultRenamer) RenameInterface(iface *Interface) string {
	if name, ok := iface.ExtAttrs.Get("DartName"); ok && name != "" {
		return name
	}
	return r.DartifyTypeName(iface.ID)
}

func (r *DefaultRenamer) DartifyTypeName(name string) string {
	if renamed, ok := r.Interfaces[name]; ok {
		return renamed
	}
	for _, prefix := range typePrefixes {
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok || rest == "" {
			continue
		}
		// Keep names like "SVGElement" readable: "Svg" + rest.
		if prefix == "SVG" {
			return "Svg" + rest
		}
		return rest
	}
	return name
}

// IsRenamedMember reports whether "Interface.member" has an explicit rename.
func (r *DefaultRenamer) IsRenamedMember(key string) bool {
	_, ok := r.Members[key]
	return ok
}
