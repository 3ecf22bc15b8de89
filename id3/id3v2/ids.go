package id3v2

// Per-version identifier -> canonical kind tables. Built once in init and
// never mutated afterwards.

var textKindsV23 map[string]Kind
var textKindsV24 map[string]Kind
var urlKindsV23 map[string]Kind
var urlKindsV24 map[string]Kind

var discardOnAlterV23 map[string]bool
var discardOnAlterV24 map[string]bool

// v22Equiv maps every 3-character v2.2 identifier this module recognises
// onto its 4-character v2.3/v2.4 equivalent, so a single set of decoders
// and a single kind table serve all three revisions.
var v22Equiv = map[string]string{
	"UFI": "UFID", "COM": "COMM", "PIC": "APIC", "IPL": "IPLS",
	"MCI": "MCDI", "PCS": "PCST",
	"TT1": "TIT1", "TT2": "TIT2", "TT3": "TIT3", "TP1": "TPE1",
	"TP2": "TPE2", "TP3": "TPE3", "TP4": "TPE4", "TCM": "TCOM",
	"TXT": "TEXT", "TLA": "TLAN", "TCO": "TCON", "TAL": "TALB",
	"TPA": "TPOS", "TRK": "TRCK", "TRC": "TSRC", "TYE": "TYER",
	"TDA": "TDAT", "TIM": "TIME", "TRD": "TRDA", "TMT": "TMED",
	"TFT": "TFLT", "TBP": "TBPM", "TCR": "TCOP", "TPB": "TPUB",
	"TEN": "TENC", "TSS": "TSSE", "TOF": "TOFN", "TLE": "TLEN",
	"TSI": "TSIZ", "TDY": "TDLY", "TKE": "TKEY", "TOA": "TOAL",
	"TOL": "TOLY", "TOR": "TORY", "TOW": "TOWN",
	"WAF": "WOAF", "WAR": "WOAR", "WAS": "WOAS", "WCM": "WCOM",
	"WCP": "WCOP", "WPB": "WPUB", "WOR": "WORS",
	"TXX": "TXXX", "WXX": "WXXX",
}

func init() {
	textKindsV23 = map[string]Kind{
		"TIT1": KindContentGroup,
		"TIT2": KindTitle,
		"TIT3": KindSubtitle,
		"TPE1": KindArtistLead,
		"TPE2": KindArtistBand,
		"TPE3": KindArtistConductor,
		"TPE4": KindArtistRemixer,
		"TCOM": KindComposer,
		"TEXT": KindLyricist,
		"TLAN": KindLanguage,
		"TCON": KindGenre,
		"TDES": KindPodcastDescription,
		"TALB": KindAlbum,
		"TPOS": KindDiscNumber,
		"TRCK": KindTrackNumber,
		"TSRC": KindISRC,
		"TYER": KindYear,
		"TDAT": KindDate,
		"TIME": KindTime,
		"TRDA": KindRecordingDates,
		"TMED": KindMediaType,
		"TFLT": KindFileType,
		"TBPM": KindBPM,
		"TCOP": KindCopyright,
		"TPUB": KindPublisher,
		"TENC": KindEncoder,
		"TSSE": KindSettings,
		"TOFN": KindOriginalFilename,
		"TLEN": KindLength,
		"TSIZ": KindSize,
		"TDLY": KindDelay,
		"TKEY": KindKey,
		"TOAL": KindOriginalAlbum,
		"TOPE": KindOriginalArtist,
		"TOLY": KindOriginalLyricist,
		"TORY": KindOriginalReleaseYear,
		"TOWN": KindStationOwner,
		"TRSN": KindStationName,
		"TRSO": KindStationOwner,
		"TGID": KindPodcastID,
		"TCAT": KindPodcastCategory,
		"TDRL": KindReleaseTime,
		"TKWD": KindPodcastKeywords,
	}

	// v2.4 drops TYER/TDAT/TIME/TRDA/TSIZ/TORY and adds the v2.4-only
	// timestamp and credit-list frames. (IPLS is not a text frame; its
	// v2.4 exclusion is handled in decodeFrameBody.)
	textKindsV24 = map[string]Kind{}
	for id, k := range textKindsV23 {
		switch id {
		case "TYER", "TDAT", "TIME", "TRDA", "TSIZ", "TORY":
			continue
		}
		textKindsV24[id] = k
	}
	textKindsV24["TDEN"] = KindEncodingTime
	textKindsV24["TDLR"] = KindReleaseTime
	textKindsV24["TDOR"] = KindOriginalReleaseTime
	textKindsV24["TDRC"] = KindRecordingTime
	textKindsV24["TDTG"] = KindTaggingTime
	textKindsV24["TIPL"] = KindInvolvedPeopleList2
	textKindsV24["TMCL"] = KindMusicianCreditsList
	textKindsV24["TMOO"] = KindMood
	textKindsV24["TPRO"] = KindProducedNotice
	textKindsV24["TSOA"] = KindAlbumSortOrder
	textKindsV24["TSOP"] = KindPerformerSortOrder
	textKindsV24["TSOT"] = KindTitleSortOrder
	textKindsV24["TSST"] = KindSetSubtitle

	urlKindsV23 = map[string]Kind{
		"WOAF": KindURLFile,
		"WOAR": KindURLArtist,
		"WOAS": KindURLSource,
		"WCOM": KindURLCommercial,
		"WCOP": KindURLCopyright,
		"WPUB": KindURLPublisher,
		"WORS": KindURLRadio,
		"WPAY": KindURLPayment,
		// WFED (podcast feed URL) is decoded as a text frame; see
		// isWFEDTextOverride.
	}
	urlKindsV24 = urlKindsV23

	discardOnAlterV23 = setOf("AENC", "ETCO", "EQUA", "MLLT", "POSS", "SYLT", "SYTC", "RVAD", "TENC", "TLEN", "TSIZ")
	discardOnAlterV24 = setOf("ASPI", "AENC", "ETCO", "EQU2", "MLLT", "POSS", "SEEK", "SYLT", "SYTC", "RVA2", "TENC", "TLEN")
}

func setOf(ids ...string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

// isWFEDTextOverride records that WFED, although it starts with W, carries
// an encoding byte and is decoded as a text frame rather than a URL frame.
func isWFEDTextOverride(id string) bool {
	return id == "WFED"
}
