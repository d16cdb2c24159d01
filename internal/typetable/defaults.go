package typetable

func primitive(target, native string) Entry {
	return Entry{Category: CategoryPrimitive, TargetType: target, NativeType: native}
}

func iface(e Entry) Entry {
	e.Category = CategoryInterface
	return e
}

func tearOff(item, native string) Entry {
	return Entry{Category: CategoryTearOff, ItemType: item, NativeType: native}
}

func typedArray(item string) Entry {
	return Entry{
		Category:       CategoryInterface,
		TargetType:     "List<" + item + ">",
		ItemType:       item,
		CustomToTarget: true,
		CustomToNative: true,
		TypedArray:     true,
	}
}

// DefaultPureInterfaces lists interfaces without a generated class.
var DefaultPureInterfaces = []string{
	"DOMStringMap",
	"ElementTimeControl",
	"ElementTraversal",
	"EventListener",
	"MediaQueryListListener",
	"MutationCallback",
	"SVGExternalResourcesRequired",
	"SVGFilterPrimitiveStandardAttributes",
	"SVGFitToViewBox",
	"SVGLangSpace",
	"SVGLocatable",
	"SVGTests",
	"SVGTransformable",
	"SVGURIReference",
	"SVGZoomAndPan",
	"TimeoutHandler",
}

func defaultEntries() map[string]Entry {
	entries := map[string]Entry{
		"boolean": {
			Category:   CategoryPrimitive,
			TargetType: "bool",
			NativeType: "bool",
			GetterName: "hasAttribute",
			SetterName: "setBooleanAttribute",
		},
		"byte":           primitive("int", "int"),
		"octet":          primitive("int", "int"),
		"short":          primitive("int", "int"),
		"unsigned short": primitive("int", "int"),
		"int":            primitive("int", ""),
		"unsigned int":   primitive("int", "unsigned"),
		"long": {
			Category:   CategoryPrimitive,
			TargetType: "int",
			NativeType: "int",
			GetterName: "getIntegralAttribute",
			SetterName: "setIntegralAttribute",
		},
		"unsigned long": {
			Category:   CategoryPrimitive,
			TargetType: "int",
			NativeType: "unsigned",
			GetterName: "getUnsignedIntegralAttribute",
			SetterName: "setUnsignedIntegralAttribute",
		},
		"long long":          primitive("int", ""),
		"unsigned long long": primitive("int", ""),
		"float":              primitive("num", "double"),
		"double":             primitive("num", ""),

		"any":                   primitive("Object", "ScriptValue"),
		"Array":                 primitive("List", ""),
		"custom":                primitive("dynamic", ""),
		"Date":                  primitive("DateTime", "double"),
		"DOMObject":             primitive("Object", "ScriptValue"),
		"DOMString":             primitive("String", "String"),
		"Dictionary":            primitive("Map", ""),
		"DOMTimeStamp":          primitive("int", "unsigned long long"),
		"object":                primitive("Object", "ScriptValue"),
		"ObjectArray":           primitive("List", ""),
		"PositionOptions":       primitive("Object", ""),
		"SerializedScriptValue": primitive("dynamic", ""),
		"sequence":              primitive("List", ""),
		"void":                  primitive("void", ""),

		"ClientRect":    iface(Entry{TargetType: "Rect", SuppressInterface: true}),
		"CSSRule":       iface(Entry{ConversionIncludes: []string{"CSSImportRule"}}),
		"DOMException":  iface(Entry{NativeType: "DOMCoreException"}),
		"DOMStringMap":  iface(Entry{TargetType: "Map<String, String>"}),
		"DOMWindow":     iface(Entry{CustomToTarget: true}),
		"Element":       iface(Entry{MergedInterface: "HTMLElement", CustomToTarget: true}),
		"EventListener": iface(Entry{CustomToNative: true}),
		"EventTarget":   iface(Entry{CustomToNative: true}),
		"HTMLElement":   iface(Entry{MergedInto: "Element", CustomToTarget: true}),
		"IDBAny":        iface(Entry{TargetType: "dynamic", CustomToNative: true}),
		"MutationRecordArray": iface(Entry{
			NativeType: "MutationRecordArray",
			TargetType: "List<MutationRecord>",
		}),
		"StyleSheet": iface(Entry{ConversionIncludes: []string{"CSSStyleSheet"}}),
		"SVGElement": iface(Entry{CustomToTarget: true}),

		"ClientRectList":   iface(Entry{ItemType: "ClientRect", TargetType: "List<Rect>", SuppressInterface: true}),
		"CSSRuleList":      iface(Entry{ItemType: "CSSRule", SuppressInterface: true}),
		"CSSValueList":     iface(Entry{ItemType: "CSSValue", SuppressInterface: true}),
		"DOMMimeTypeArray": iface(Entry{ItemType: "DOMMimeType"}),
		"DOMPluginArray":   iface(Entry{ItemType: "DOMPlugin"}),
		"DOMStringList": iface(Entry{
			ItemType:       "DOMString",
			TargetType:     "List<String>",
			CustomToNative: true,
		}),
		"EntryArray":             iface(Entry{ItemType: "Entry", SuppressInterface: true}),
		"EntryArraySync":         iface(Entry{ItemType: "EntrySync", SuppressInterface: true}),
		"FileList":               iface(Entry{ItemType: "File", TargetType: "List<File>"}),
		"Future":                 iface(Entry{TargetType: "Future"}),
		"GamepadList":            iface(Entry{ItemType: "Gamepad", SuppressInterface: true}),
		"HTMLAllCollection":      iface(Entry{ItemType: "Node"}),
		"HTMLCollection":         iface(Entry{ItemType: "Node"}),
		"NamedNodeMap":           iface(Entry{ItemType: "Node"}),
		"NodeList":               iface(Entry{ItemType: "Node", TargetType: "List<Node>"}),
		"SVGElementInstanceList": iface(Entry{ItemType: "SVGElementInstance", SuppressInterface: true}),
		"SourceBufferList":       iface(Entry{ItemType: "SourceBuffer"}),
		"SpeechGrammarList":      iface(Entry{ItemType: "SpeechGrammar"}),
		"SpeechInputResultList": iface(Entry{
			ItemType:          "SpeechInputResult",
			SuppressInterface: true,
		}),
		"SpeechRecognitionResultList": iface(Entry{
			ItemType:          "SpeechRecognitionResult",
			SuppressInterface: true,
		}),
		"SQLResultSetRowList": iface(Entry{ItemType: "Dictionary"}),
		"StyleSheetList":      iface(Entry{ItemType: "StyleSheet", SuppressInterface: true}),
		"TextTrackCueList":    iface(Entry{ItemType: "TextTrackCue"}),
		"TextTrackList":       iface(Entry{ItemType: "TextTrack"}),
		"TouchList":           iface(Entry{ItemType: "Touch"}),

		"Float32Array":      typedArray("double"),
		"Float64Array":      typedArray("double"),
		"Int8Array":         typedArray("int"),
		"Int16Array":        typedArray("int"),
		"Int32Array":        typedArray("int"),
		"Uint8Array":        typedArray("int"),
		"Uint8ClampedArray": typedArray("int"),
		"Uint16Array":       typedArray("int"),
		"Uint32Array":       typedArray("int"),

		// Both the DOM ArrayBuffer and the typed-data ByteBuffer are accepted
		// while the typed-data library settles, so these stay dynamic.
		"ArrayBufferView": iface(Entry{TargetType: "dynamic", CustomToNative: true, CustomToTarget: true}),
		"ArrayBuffer":     iface(Entry{TargetType: "dynamic", CustomToNative: true, CustomToTarget: true}),

		"SVGAngle":               tearOff("", ""),
		"SVGLength":              tearOff("", ""),
		"SVGLengthList":          tearOff("SVGLength", ""),
		"SVGMatrix":              tearOff("", ""),
		"SVGNumber":              tearOff("", "SVGPropertyTearOff<float>"),
		"SVGNumberList":          tearOff("SVGNumber", ""),
		"SVGPathSegList":         tearOff("SVGPathSeg", "SVGPathSegListPropertyTearOff"),
		"SVGPoint":               tearOff("", "SVGPropertyTearOff<FloatPoint>"),
		"SVGPointList":           tearOff("", ""),
		"SVGPreserveAspectRatio": tearOff("", ""),
		"SVGRect":                tearOff("", "SVGPropertyTearOff<FloatRect>"),
		"SVGStringList":          tearOff("DOMString", "SVGStaticListPropertyTearOff<SVGStringList>"),
		"SVGTransform":           tearOff("", ""),
		"SVGTransformList":       tearOff("SVGTransform", "SVGTransformListPropertyTearOff"),
	}
	return entries
}

// Default returns the production type table.
func Default() *Table {
	return New(defaultEntries(), DefaultPureInterfaces)
}
