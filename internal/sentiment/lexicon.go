package sentiment

// valences maps lowercase words to a valence in [-4, 4], the scale used by
// common sentiment lexicons. The set is small but covers the vocabulary of
// personal journal writing.
var valences = map[string]float64{
	// positive
	"good": 1.9, "great": 3.1, "amazing": 2.8, "wonderful": 2.7,
	"happy": 2.7, "happiness": 2.6, "joy": 2.8, "love": 3.2, "loved": 2.9,
	"excited": 2.2, "exciting": 2.1, "fun": 2.3, "laughed": 2.2, "laugh": 2.2,
	"beautiful": 2.9, "calm": 1.3, "peaceful": 2.2, "relaxed": 1.8,
	"proud": 2.1, "grateful": 2.4, "thankful": 2.3, "glad": 2.0,
	"hope": 1.9, "hopeful": 2.2, "better": 1.9, "best": 3.2,
	"nice": 1.8, "enjoyed": 2.1, "enjoy": 2.0, "success": 2.7,
	"win": 2.8, "won": 2.7, "friend": 2.2, "friends": 2.2,
	"delicious": 2.5, "perfect": 2.7, "warm": 1.5, "smile": 2.1,

	// negative
	"bad": -2.5, "terrible": -3.1, "awful": -3.0, "horrible": -3.0,
	"sad": -2.1, "sadness": -2.1, "cry": -2.2, "cried": -2.2,
	"angry": -2.3, "anger": -2.3, "mad": -2.2, "furious": -2.9,
	"anxious": -1.9, "anxiety": -2.0, "worried": -1.9, "worry": -1.8,
	"stress": -2.0, "stressed": -2.1, "tired": -1.4, "exhausted": -2.0,
	"lonely": -2.3, "alone": -1.2, "afraid": -2.2, "fear": -2.2,
	"hate": -2.7, "hated": -2.7, "annoyed": -1.9, "annoying": -1.9,
	"sick": -2.0, "pain": -2.3, "painful": -2.4, "hurt": -2.2,
	"lost": -1.5, "failure": -2.5, "failed": -2.3, "fail": -2.3,
	"worse": -2.1, "worst": -3.1, "argument": -1.9, "argued": -2.0,
	"fight": -2.1, "fought": -2.0, "upset": -2.0, "miserable": -2.9,
}

// negations flip the valence of the following sentiment word.
var negations = map[string]bool{
	"not": true, "no": true, "never": true, "nothing": true,
	"hardly": true, "barely": true, "isnt": true, "wasnt": true,
	"dont": true, "didnt": true, "cant": true, "couldnt": true,
	"wont": true, "without": true,
}

// boosters scale the valence of the following sentiment word. Keys are
// single tokens; "a bit sad" downtones through "bit".
var boosters = map[string]float64{
	"very": 0.293, "really": 0.293, "extremely": 0.293, "so": 0.293,
	"incredibly": 0.293, "totally": 0.293, "absolutely": 0.293,
	"slightly": -0.293, "somewhat": -0.293, "barely": -0.293, "bit": -0.293,
}
