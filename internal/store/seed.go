package store

import "topic-communities/internal/models"

const seedImage = "https://placehold.co/600x400.png"

// SeedTopics returns the reference topic dataset in insertion order.
func SeedTopics() []models.Topic {
	topic := func(id, name string, rating float64, tags ...string) models.Topic {
		return models.Topic{ID: id, Name: name, AverageRating: models.Float(rating), Tags: tags}
	}
	return []models.Topic{
		topic("topic1", "Matemáticas Avanzadas", 4.5, "cálculo", "álgebra", "geometría"),
		topic("topic2", "Programación en Python", 4.8, "python", "desarrollo web", "machine learning"),
		topic("topic3", "Historia del Arte", 4.2, "renacimiento", "barroco", "impresionismo"),
		topic("topic4", "Química Orgánica", 4.0, "compuestos", "reacciones", "laboratorio"),
		topic("topic5", "Lenguaje y Literatura", 4.6, "gramática", "novela", "poesía"),
		topic("topicMath", "Matematicas", 4.7, "algebra", "geometría", "cálculo", "topología", "teoría de números"),
		topic("topicPhysics", "Física", 4.5, "mecánica", "eléctrica", "magnética", "termodinámica"),
		topic("topicSpanish", "Español y Literatura", 4.4, "gramática", "ortografía", "lectura crítica", "literatura colombiana", "géneros literarios"),
		topic("topicSocialStudies", "Ciencias Sociales", 4.3, "historia de colombia", "geografía colombiana", "democracia", "constitución", "economía"),
		topic("topicNaturalSciences", "Ciencias Naturales", 4.5, "biología", "ecología", "cuerpo humano", "química básica", "física básica"),
		topic("topicEnglish", "Inglés", 4.6, "grammar", "vocabulary", "reading", "listening", "speaking"),
		topic("topicArts", "Educación Artística", 4.1, "dibujo", "pintura", "música", "teatro", "historia del arte colombiano"),
		topic("topicPE", "Educación Física", 4.0, "deportes", "recreación", "salud", "juegos tradicionales"),
	}
}

// SeedCommunities returns the reference community dataset. topic4 only has a
// community rated below 4.0; topicMath has two qualifying ones without images.
func SeedCommunities() []models.Community {
	return []models.Community{
		{
			ID: "comm1", TopicID: "topic1", Name: "Cálculo Multivariable Masters",
			Description: "Dominando derivadas parciales, integrales múltiples y teoremas vectoriales.",
			Rating:      models.Float(4.7), MembersCount: models.Int(230),
			Subtopics: []string{"Teoría de Grafos", "Combinatoria", "Lógica"},
			ImageURL:  seedImage, DataAIHint: "mathematics abstract",
		},
		{
			ID: "comm2", TopicID: "topic1", Name: "Álgebra Lineal Aplicada",
			Description: "Explorando espacios vectoriales, transformaciones lineales y sus usos prácticos.",
			Rating:      models.Float(4.9), MembersCount: models.Int(180),
			Subtopics: []string{"Matrices", "Eigenvalores", "Machine Learning"},
			ImageURL:  seedImage, DataAIHint: "algebra geometry",
		},
		{
			ID: "comm3", TopicID: "topic2", Name: "Python Pro Devs",
			Description: "Comunidad para desarrolladores Python avanzados: patrones, optimización y nuevas librerías.",
			Rating:      models.Float(4.8), MembersCount: models.Int(520),
			Subtopics: []string{"Django", "Flask", "AsyncIO"},
			ImageURL:  seedImage, DataAIHint: "python code",
		},
		{
			ID: "comm4", TopicID: "topic2", Name: "Data Science con Python",
			Description: "Desde Pandas y NumPy hasta Scikit-learn y TensorFlow. Proyectos y discusiones.",
			Rating:      models.Float(4.6), MembersCount: models.Int(1200),
			Subtopics: []string{"Pandas", "Scikit-learn", "Visualización"},
			ImageURL:  seedImage, DataAIHint: "data science",
		},
		{
			ID: "comm5", TopicID: "topic3", Name: "Renacimiento en Detalle",
			Description: "Análisis profundo de obras, artistas y contexto del Renacimiento italiano y nórdico.",
			Rating:      models.Float(4.3), MembersCount: models.Int(95),
			Subtopics: []string{"Da Vinci", "Miguel Ángel", "Mecenazgo"},
			ImageURL:  seedImage, DataAIHint: "renaissance art",
		},
		{
			ID: "comm6", TopicID: "topic4", Name: "Química de Polímeros",
			Description: "Estudio de macromoléculas, síntesis y propiedades de los polímeros.",
			Rating:      models.Float(3.9), MembersCount: models.Int(70),
			Subtopics: []string{"Síntesis", "Caracterización", "Aplicaciones Industriales"},
			ImageURL:  seedImage, DataAIHint: "chemistry lab",
		},
		{
			ID: "commMathLearn", TopicID: "topicMath", Name: "Matematic's learns",
			Rating: models.Float(4.5), MembersCount: models.Int(100),
			Subtopics:  []string{"Algebraic geometry", "Algebraic topology", "Number theory"},
			DataAIHint: "mathematics learning",
		},
		{
			ID: "commMathExplorers", TopicID: "topicMath", Name: "Exploradores de Matemáticas",
			Description: "Un espacio para discutir, aprender y resolver problemas en todas las áreas de las matemáticas.",
			Rating:      models.Float(4.6), MembersCount: models.Int(150),
			Subtopics: []string{
				"Álgebra Fundamental", "Geometría Euclidiana", "Cálculo Diferencial e Integral",
				"Estadística Descriptiva", "Lógica y Conjuntos",
			},
			DataAIHint: "mathematics study",
		},
		{
			ID: "commPhysicsLearn", TopicID: "topicPhysics", Name: "Fisic's learns",
			Rating: models.Float(4.6), MembersCount: models.Int(120),
			Subtopics:  []string{"Fisica mecanica", "Fisica electrica", "Fisica magnetica"},
			DataAIHint: "physics learning",
		},
	}
}
