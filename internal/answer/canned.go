package answer

import "strings"

// cannedRule pairs a predicate over the lower-cased question with its reply.
type cannedRule struct {
	name  string
	match func(q string) bool
	text  string
}

// cannedRules is evaluated top to bottom and the first match wins. Several
// predicates overlap ("session" and "view" also appear in arrangement
// questions), so the order is part of the behavior.
var cannedRules = []cannedRule{
	{
		name: "arrangement_view",
		match: func(q string) bool {
			return containsAny(q, "arranged view", "arrangement view", "aranged view", "tab key") ||
				(strings.Contains(q, "otvorim") && strings.Contains(q, "view")) ||
				(strings.Contains(q, "otvaram") && strings.Contains(q, "view"))
		},
		text: ">> Arranged View in Ableton Live is the timeline view where you build your full song structure. It shows audio and MIDI clips arranged horizontally across time, allowing you to create intro, verse, chorus, outro sections. Switch between Session View (clip launcher) and Arrangement View using Tab key. Press TAB to switch between views.",
	},
	{
		name: "eq",
		match: func(q string) bool {
			return strings.Contains(q, "eq") && strings.Contains(q, "ableton")
		},
		text: ">> EQ (Equalizer) in Ableton Live is used to adjust frequency content of audio. Ableton has EQ Eight (8-band) and EQ Three (3-band). Use it to cut unwanted frequencies, boost desired ones, or create space in your mix. High-pass filters remove low rumble, low-pass filters remove harshness.",
	},
	{
		name: "compressor",
		match: func(q string) bool {
			return containsAny(q, "compressor", "compression")
		},
		text: ">> Compressor in Ableton reduces dynamic range by lowering loud parts. Key settings: Threshold (when compression starts), Ratio (how much compression), Attack (how fast), Release (how fast it stops). Use for evening out levels, adding punch, or gluing mix elements together.",
	},
	{
		name: "session_view",
		match: func(q string) bool {
			return strings.Contains(q, "session view") ||
				(strings.Contains(q, "session") && strings.Contains(q, "view"))
		},
		text: ">> Session View in Ableton Live is the clip launcher view where you can trigger clips in real-time. Each track has clip slots that can contain audio or MIDI clips. Perfect for live performance, jamming, and experimenting with song ideas. Press TAB to switch to Arrangement View.",
	},
	{
		name:  "reverb",
		match: func(q string) bool { return strings.Contains(q, "reverb") },
		text:  ">> Reverb in Ableton simulates acoustic spaces and adds depth to sounds. Use Reverb device or sends/returns for efficiency. Key parameters: Room Size, Decay Time, Pre-Delay, Dry/Wet. Sends allow multiple tracks to use same reverb, saving CPU and creating cohesive space.",
	},
	{
		name:  "delay",
		match: func(q string) bool { return strings.Contains(q, "delay") },
		text:  ">> Delay in Ableton creates echoes and rhythmic effects. Simple Delay for basic echoes, Ping Pong Delay for stereo bouncing, Echo for complex modulated delays. Key settings: Time (sync to tempo), Feedback (number of repeats), Dry/Wet mix.",
	},
	{
		name: "midi",
		match: func(q string) bool {
			return strings.Contains(q, "midi") && containsAny(q, "što", "what")
		},
		text: ">> MIDI (Musical Instrument Digital Interface) is a protocol for sending musical information between devices. In Ableton, MIDI clips contain note data, not audio. MIDI notes trigger sounds from instruments. You can edit notes in MIDI Editor, adjust velocity, timing, and duration.",
	},
	{
		name: "beginner",
		match: func(q string) bool {
			return containsAny(q, "ne znam", "početnik", "beginner", "korak po korak", "step by step",
				"kako početi", "getting started", "voditi", "guide")
		},
		text: `>> ABLETON LIVE - POČETNI VODIČ:

1. OSNOVNI LAYOUT:
   - Session View (clip launcher) - za jamiranje i eksperimente
   - Arrangement View (timeline) - za stvaranje kompletne pjesme
   - Prebacivanje: TAB tipka

2. PRVI KORACI:
   - Stvori novi Live Set (File > New)
   - Dodaj Audio Track (Ctrl+T)
   - Povuci audio fajl u track ili record mikrofon
   - Play dugme ili Space za reprodukciju

3. OSNOVNI WORKFLOW:
   - Record: R tipka ili Record dugme
   - Play/Stop: Space tipka
   - Tempo: mijenjaj BPM gore lijevo
   - Volume: fader-i desno od track-a

4. SLJEDEĆI KORACI:
   - Dodaj MIDI track za virtuelne instrumente
   - Eksperimentiraj s built-in zvukovima (Drums, Bass, Keys)
   - Koristi Audio Effects (Reverb, Delay, EQ)
   - Snimaj sve u Arrangement View za finalnu pjesmu

SAVJET: Počni s jednostavnim - jedan drum loop, jedna melodija!`,
	},
	{
		name: "beat",
		match: func(q string) bool {
			return strings.Contains(q, "kako napraviti") && containsAny(q, "beat", "ritam")
		},
		text: ">> KAKO NAPRAVITI BEAT: 1) Dodaj MIDI track (Ctrl+Shift+T) 2) Povuci Drum Kit iz browser-a 3) Double-click za otvoriti MIDI clip 4) Crtan note-ove: Kick (C1), Snare (D1), Hi-hat (F#1) 5) Koristi kvantizaciju (Ctrl+U) za savršen timing 6) Eksperimentiraj s velocity za dinamiku",
	},
	{
		name: "record",
		match: func(q string) bool {
			return strings.Contains(q, "kako snimiti") ||
				(strings.Contains(q, "record") && strings.Contains(q, "audio"))
		},
		text: ">> SNIMANJE AUDIO: 1) Dodaj Audio Track (Ctrl+T) 2) Spoji mikrofon/instrument u audio interface 3) Odaberi Input (IO sekcija) 4) Uključi Monitor (Auto/In/Off) 5) Pritisni Record (R) i Play (Space) 6) Snimaj! Savjeti: Postavi levels, koristi click track (metronom)",
	},
	{
		name: "browser",
		match: func(q string) bool {
			return strings.Contains(q, "browser") ||
				(strings.Contains(q, "kako naći") && strings.Contains(q, "sound"))
		},
		text: ">> ABLETON BROWSER: Lijeva strana - sve tvoje zvukove! PLACES (folderi), CATEGORIES (tipovi), PACKS (kolekcije). Povuci-i-stavi iz browsera u track-ove. Pretraži tipkom, koristi Tags za brže pronalaženje. HOT SWAP - zamijeni zvuk bez prekidanja reproduce!",
	},
}

// NoBackendMessage is returned when no canned rule matches.
const NoBackendMessage = "ERROR Sorry, all AI providers are currently unavailable. Get a free API key at https://console.groq.com/keys or https://console.x.ai and add it to your .env file."

// Canned answers question from the fixed rule table without any network
// access. matched is false when the generic message was returned. It is pure.
func Canned(question string) (text string, matched bool) {
	q := strings.ToLower(question)
	for _, r := range cannedRules {
		if r.match(q) {
			return r.text, true
		}
	}
	return NoBackendMessage, false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
