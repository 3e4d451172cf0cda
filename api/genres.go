package api

// Genre tables mirror the Author.Today catalog. English names double as
// FB2 genre codes; Russian names are for captions and human output.

// GenreName resolves a genre ID to its name in the given language ("en"
// or "ru"). Unknown and missing IDs fall back to the generic bucket.
func GenreName(id *int, lang string) string {
	table := genresRU
	if lang == "en" {
		table = genresEN
	}
	if id != nil {
		if name, ok := table[*id]; ok {
			return name
		}
	}
	return table[0]
}

// ID 0 is the fallback bucket.
var genresEN = map[int]string{
	0:  "other",
	1:  "prose_contemporary",
	2:  "fantasy",
	3:  "sf_etc",
	4:  "detective",
	5:  "det_action",
	6:  "love",
	7:  "erotica",
	8:  "adventure",
	9:  "fanfiction",
	10: "sf_mystic",
	11: "thriller",
	12: "humor",
	13: "poetry",
	16: "prose",
	17: "prose_history",
	18: "sf_horror",
	19: "other",
	20: "sf_litrpg",
	21: "popadancy",
	28: "sf_history",
	29: "sf_social",
	30: "sf_action",
	31: "sf_heroic",
	32: "sf_postapocalyptic",
	33: "sf_space",
	34: "sf_cyberpunk",
	35: "sf_stimpank",
	36: "sf",
	37: "sf_humor",
	38: "fantasy_action",
	39: "urban_fantasy",
	40: "love_sf",
	41: "sf_fantasy",
	42: "sf_humor",
	43: "sf_epic",
	44: "dark_fantasy",
	45: "love_short",
	46: "love_history",
	47: "popadantsy_vo_vremeni",
	48: "popadantsy_v_magicheskie_miry",
	49: "det_political",
	50: "det_history",
	51: "det_espionage",
	52: "sf_detective",
	53: "love_erotica",
	54: "sf-erotika",
	55: "fantasy-erotika",
	56: "love_erotica",
	57: "love_erotica",
	60: "modern_tale",
	62: "other",
	63: "sf_social",
	64: "sf_heroic",
	66: "popadancy",
	67: "love_contemporary",
	68: "love_erotica",
	69: "sf_realrpg",
	70: "adv_history",
	71: "boyar_anime",
	72: "back_to_ussr",
}

var genresRU = map[int]string{
	0:  "Иное",
	1:  "Современная проза",
	2:  "Фэнтези",
	3:  "Фантастика",
	4:  "Детектив",
	5:  "Боевик",
	6:  "Любовные романы",
	7:  "Эротика",
	8:  "Приключения",
	9:  "Фанфик",
	10: "Мистика",
	11: "Триллер",
	12: "Юмор",
	13: "Поэзия",
	16: "Подростковая проза",
	17: "Историческая проза",
	18: "Ужасы",
	19: "Разное",
	20: "ЛитРПГ",
	21: "Попаданцы",
	28: "Альтернативная история",
	29: "Антиутопия",
	30: "Боевая фантастика",
	31: "Героическая фантастика",
	32: "Постапокалипсис",
	33: "Космическая фантастика",
	34: "Киберпанк",
	35: "Стимпанк",
	36: "Научная фантастика",
	37: "Юмористическая фантастика",
	38: "Боевое фэнтези",
	39: "Городское фэнтези",
	40: "Любовное фэнтези",
	41: "Историческое фэнтези",
	42: "Юмористическое фэнтези",
	43: "Эпическое фэнтези",
	44: "Темное фэнтези",
	45: "Короткий любовный роман",
	46: "Исторические любовные романы",
	47: "Попаданцы во времени",
	48: "Попаданцы в магические миры",
	49: "Политический роман",
	50: "Исторический детектив",
	51: "Шпионский детектив",
	52: "Фантастический детектив",
	53: "Романтическая эротика",
	54: "Эротическая фантастика",
	55: "Эротическое фэнтези",
	56: "Эротический фанфик",
	57: "Слэш",
	60: "Сказка",
	62: "Развитие личности",
	63: "Социальная фантастика",
	64: "Героическое фэнтези",
	66: "Попаданцы в космос",
	67: "Современный любовный роман",
	68: "Фемслэш",
	69: "РеалРПГ",
	70: "Исторические приключения",
	71: "Бояръ-Аниме",
	72: "Назад в СССР",
}
