package id3v2

// Kind normalises a frame's revision-specific identifier (3 characters in
// v2.2, 4 in v2.3/v2.4) into a single enum independent of which revision
// produced it. Two tags of different revisions that both carry a track
// title compare equal on Kind even though their wire identifiers ("TT2"
// versus "TIT2") differ.
type Kind int

const (
	KindUnknown Kind = iota

	// Text information frames.
	KindTitle
	KindContentGroup
	KindSubtitle
	KindArtistLead
	KindArtistBand
	KindArtistConductor
	KindArtistRemixer
	KindComposer
	KindLyricist
	KindLanguage
	KindGenre
	KindAlbum
	KindDiscNumber
	KindTrackNumber
	KindISRC
	KindYear
	KindDate
	KindTime
	KindRecordingDates
	KindRecordingTime
	KindReleaseTime
	KindOriginalReleaseTime
	KindOriginalReleaseYear
	KindTaggingTime
	KindEncodingTime
	KindMediaType
	KindFileType
	KindBPM
	KindCopyright
	KindPublisher
	KindEncoder
	KindSettings
	KindOriginalFilename
	KindLength
	KindSize
	KindDelay
	KindKey
	KindMood
	KindProducedNotice
	KindAlbumSortOrder
	KindPerformerSortOrder
	KindTitleSortOrder
	KindSetSubtitle
	KindOriginalAlbum
	KindOriginalArtist
	KindOriginalLyricist
	KindStationName
	KindStationOwner
	KindInvolvedPeopleList2
	KindMusicianCreditsList
	KindPodcastDescription
	KindPodcastCategory
	KindPodcastKeywords
	KindPodcastID

	// URL link frames.
	KindURLFile
	KindURLArtist
	KindURLSource
	KindURLCommercial
	KindURLCopyright
	KindURLPublisher
	KindURLRadio
	KindURLPayment

	// Frames with a bespoke wire layout, one decoder each.
	KindUserDefinedText
	KindUserDefinedURL
	KindUFID
	KindMCDI
	KindIPLS
	KindAttachedPicture
	KindComment
	KindITunesPodcast
)

var kindNames = map[Kind]string{
	KindUnknown:             "unknown",
	KindTitle:               "title",
	KindContentGroup:        "content-group",
	KindSubtitle:            "subtitle",
	KindArtistLead:          "artist-lead",
	KindArtistBand:          "artist-band",
	KindArtistConductor:     "artist-conductor",
	KindArtistRemixer:       "artist-remixer",
	KindComposer:            "composer",
	KindLyricist:            "lyricist",
	KindLanguage:            "language",
	KindGenre:               "genre",
	KindAlbum:               "album",
	KindDiscNumber:          "disc-number",
	KindTrackNumber:         "track-number",
	KindISRC:                "isrc",
	KindYear:                "year",
	KindDate:                "date",
	KindTime:                "time",
	KindRecordingDates:      "recording-dates",
	KindRecordingTime:       "recording-time",
	KindReleaseTime:         "release-time",
	KindOriginalReleaseTime: "original-release-time",
	KindOriginalReleaseYear: "original-release-year",
	KindTaggingTime:         "tagging-time",
	KindEncodingTime:        "encoding-time",
	KindMediaType:           "media-type",
	KindFileType:            "file-type",
	KindBPM:                 "bpm",
	KindCopyright:           "copyright",
	KindPublisher:           "publisher",
	KindEncoder:             "encoder",
	KindSettings:            "settings",
	KindOriginalFilename:    "original-filename",
	KindLength:              "length",
	KindSize:                "size",
	KindDelay:               "delay",
	KindKey:                 "key",
	KindMood:                "mood",
	KindProducedNotice:      "produced-notice",
	KindAlbumSortOrder:      "album-sort-order",
	KindPerformerSortOrder:  "performer-sort-order",
	KindTitleSortOrder:      "title-sort-order",
	KindSetSubtitle:         "set-subtitle",
	KindOriginalAlbum:       "original-album",
	KindOriginalArtist:      "original-artist",
	KindOriginalLyricist:    "original-lyricist",
	KindStationName:         "station-name",
	KindStationOwner:        "station-owner",
	KindInvolvedPeopleList2: "involved-people-list-2",
	KindMusicianCreditsList: "musician-credits-list",
	KindPodcastDescription:  "podcast-description",
	KindPodcastCategory:     "podcast-category",
	KindPodcastKeywords:     "podcast-keywords",
	KindPodcastID:           "podcast-id",
	KindURLFile:             "url-file",
	KindURLArtist:           "url-artist",
	KindURLSource:           "url-source",
	KindURLCommercial:       "url-commercial",
	KindURLCopyright:        "url-copyright",
	KindURLPublisher:        "url-publisher",
	KindURLRadio:            "url-radio",
	KindURLPayment:          "url-payment",
	KindUserDefinedText:     "user-defined-text",
	KindUserDefinedURL:      "user-defined-url",
	KindUFID:                "ufid",
	KindMCDI:                "mcdi",
	KindIPLS:                "ipls",
	KindAttachedPicture:     "attached-picture",
	KindComment:             "comment",
	KindITunesPodcast:       "itunes-podcast",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind(?)"
}

// IsURL reports whether identifiers of this kind carry a plain ISO-8859-1
// URL with no leading encoding byte (the "W" frames, barring WXXX which has
// its own decoder).
func (k Kind) IsURL() bool {
	switch k {
	case KindURLFile, KindURLArtist, KindURLSource, KindURLCommercial,
		KindURLCopyright, KindURLPublisher, KindURLRadio, KindURLPayment:
		return true
	}
	return false
}
